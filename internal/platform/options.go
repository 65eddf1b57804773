package platform

import (
	"log/slog"

	"github.com/inkpress/inkpress/pkg/core"
)

// options holds the internal configuration for the engine.
type options struct {
	source core.Source
	logger *slog.Logger
	config map[string]any
}

// Option defines a functional option for configuring the engine.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		source: nil,
		logger: nil,
		config: make(map[string]any),
	}
}

// WithPatterns sets the doublestar include globs for the content scan.
// Defaults to every supported extension under the source root.
func WithPatterns(patterns ...string) Option {
	return func(o *options) {
		o.config["patterns"] = patterns
	}
}

// WithSystemDir sets the hidden directory name holding the parse index
// (e.g. ".inkpress").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}

// WithStrict enables strict mode for the serializers. Numbers in residual
// front-matter keys are kept as json.Number to preserve precision.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.config["strict"] = strict
	}
}

// WithLogger sets the logger for the service and the source.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSource allows injecting a custom content source (e.g. a mock, or a
// non-filesystem medium). If provided, the default filesystem source is
// skipped.
func WithSource(source core.Source) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithEventBuffer sets the size of the watch event channel buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring during
// the watch loop (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
