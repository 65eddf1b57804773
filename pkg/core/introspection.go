package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	SourceType string `json:"source_type"`
	Watchable  bool   `json:"watchable"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	sourceType := "unknown"
	if s.source != nil {
		sourceType = "source"
		if comp, ok := s.source.(introspection.Component); ok {
			sourceType = comp.ComponentType()
		}
	}

	_, watchable := s.source.(Watchable)

	return ServiceState{
		SourceType: sourceType,
		Watchable:  watchable,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
