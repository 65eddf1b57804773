package core

import (
	"context"
	"fmt"
)

// Source defines the contract for enumerating content units.
// Adhering to this interface keeps the core independent of the underlying
// medium (filesystem today; an object store or archive tomorrow).
type Source interface {
	// LoadAll reads every content unit in one batch. Units with malformed
	// metadata are skipped and reported; they never abort the load.
	// A nil error with skips is a successful partial load. If the source
	// itself cannot be enumerated, the error wraps ErrSourceUnavailable
	// and both return slices are nil.
	LoadAll(ctx context.Context) ([]Post, []Skip, error)
}

// EventType represents the kind of change observed in the content source.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the content source. It signals that a fresh
// Load would observe different content; it never mutates an existing Store.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and the lifecycle Event contract).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

// Watchable defines an interface for sources that can report changes.
type Watchable interface {
	// Watch emits an Event whenever a content unit matching pattern
	// changes. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
