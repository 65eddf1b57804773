// Package lifecycle bridges store change events into the generic
// aretw0/lifecycle event model, so applications supervising workers with
// lifecycle can react to content changes alongside their other sources.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/inkpress/inkpress/pkg/core"
)

type storeSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits store change events.
// The input channel is typically the result of Service.Watch.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &storeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *storeSource) Start(ctx context.Context) error {
	// The bridge goroutine is tracked by lifecycle.Go so supervisors can
	// account for it during shutdown.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
