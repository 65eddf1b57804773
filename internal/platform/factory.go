package platform

import (
	"log/slog"

	"github.com/inkpress/inkpress/pkg/adapters/fs"
	"github.com/inkpress/inkpress/pkg/core"
)

// New wires a Service to a content source rooted at path.
//
//	svc, err := inkpress.New("./content", inkpress.WithLogger(logger))
func New(path string, opts ...Option) (*core.Service, error) {
	source, logger, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return core.NewService(source, logger), nil
}

// Open builds the content source only, for callers that want to drive
// LoadAll themselves.
func Open(path string, opts ...Option) (core.Source, *slog.Logger, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.source != nil {
		return o.source, o.logger, nil
	}

	cfg := fs.Config{
		Path:   path,
		Logger: o.logger,
	}
	if v, ok := o.config["patterns"].([]string); ok {
		cfg.Patterns = v
	}
	if v, ok := o.config["system_dir"].(string); ok {
		cfg.SystemDir = v
	}
	if v, ok := o.config["strict"].(bool); ok {
		cfg.Strict = v
	}
	if v, ok := o.config["event_buffer"].(int); ok {
		cfg.EventBuffer = v
	}
	if v, ok := o.config["watcher_error_handler"].(func(error)); ok {
		cfg.ErrorHandler = v
	}

	return fs.NewSource(cfg), o.logger, nil
}
