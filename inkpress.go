package inkpress

import (
	"context"
	"log/slog"

	"github.com/inkpress/inkpress/internal/platform"
	"github.com/inkpress/inkpress/pkg/core"
)

// --- Types ---

// Post is a public alias for the domain post entity.
type Post = core.Post

// Store is a public alias for the immutable post store.
type Store = core.Store

// Summary is a public alias for the load summary.
type Summary = core.Summary

// Event is a public alias for source change events.
type Event = core.Event

// --- Configuration ---

// Option defines a functional option for configuring the engine.
type Option = platform.Option

// WithPatterns sets the doublestar include globs for the content scan.
func WithPatterns(patterns ...string) Option {
	return platform.WithPatterns(patterns...)
}

// WithSystemDir sets the hidden directory name holding the parse index.
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithStrict enables strict number handling in residual front-matter keys.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSource allows injecting a custom content source.
func WithSource(source core.Source) Option {
	return platform.WithSource(source)
}

// WithEventBuffer sets the size of the watch event channel buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatcherErrorHandler registers a callback for watch loop errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a new inkpress Service rooted at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// --- Operations ---

// Load is a convenience for New followed by Service.Load: it reads the
// content directory once and returns the immutable store with its summary.
func Load(ctx context.Context, path string, opts ...Option) (*Store, Summary, error) {
	svc, err := New(path, opts...)
	if err != nil {
		return nil, Summary{}, err
	}
	return svc.Load(ctx)
}
