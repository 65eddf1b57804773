package fs

import (
	"github.com/aretw0/introspection"
)

// SourceState exposes internal state for observability.
type SourceState struct {
	Path          string   `json:"path"`
	SystemDir     string   `json:"system_dir"`
	Patterns      []string `json:"patterns"`
	IndexSize     int      `json:"index_size"`
	Strict        bool     `json:"strict"`
	Serializers   []string `json:"serializers"`
	WatcherActive bool     `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (s *Source) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	serializers := make([]string, 0, len(s.serializers))
	for ext := range s.serializers {
		serializers = append(serializers, ext)
	}

	return SourceState{
		Path:          s.Path,
		SystemDir:     s.config.SystemDir,
		Patterns:      s.config.Patterns,
		IndexSize:     s.cache.Len(),
		Strict:        s.config.Strict,
		Serializers:   serializers,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Source) ComponentType() string {
	return "fs-source"
}

var _ introspection.Introspectable = (*Source)(nil)
var _ introspection.Component = (*Source)(nil)

func (s *Source) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
