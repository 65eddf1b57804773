package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrSourceUnavailable signals that the content source could not be
	// enumerated at all. It is fatal for the whole load: no partial store
	// is returned.
	ErrSourceUnavailable = errors.New("content source unavailable")

	// ErrNotFound signals a lookup for an unknown post ID.
	ErrNotFound = errors.New("post not found")
)

// MalformedMetadataError describes a single content unit whose front matter
// is missing required fields or could not be parsed. It is recoverable:
// the unit is skipped and loading continues.
type MalformedMetadataError struct {
	ID     string
	Reason string
	Err    error
}

func (e *MalformedMetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed metadata in %s: %s: %v", e.ID, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed metadata in %s: %s", e.ID, e.Reason)
}

func (e *MalformedMetadataError) Unwrap() error { return e.Err }

// Skip records one unit dropped during a load, for the caller's summary.
type Skip struct {
	ID     string
	Reason string
}

// Summary reports the outcome of a load: how many units were found in the
// source, how many became posts, and why the rest were skipped.
type Summary struct {
	Found   int
	Loaded  int
	Skipped []Skip
}
