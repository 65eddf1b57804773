package core

import "time"

// Metadata represents the residual front-matter key-value pairs of a post.
type Metadata map[string]any

// Post is the central entity of the domain.
// It represents a single content unit loaded from a source: structured
// front-matter fields plus an opaque body. A Post is immutable once loaded;
// the engine never writes back to the content source.
type Post struct {
	// ID is the source-relative identifier of the content unit
	// (e.g. "drafts/cli-scripts" for "drafts/cli-scripts.md").
	ID string

	// Title is the required display label.
	Title string

	// Date is the sole ordering key for listings.
	Date time.Time

	// Tags is an order-insensitive label set used for grouping. May be empty.
	Tags []string

	// Meta holds front-matter keys beyond the structured fields above.
	// Preserved verbatim, never interpreted.
	Meta Metadata

	// Body is free-form markup, opaque to the store. Renderers decide
	// how to interpret it.
	Body string
}

// HasTag reports whether the post carries the given tag.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
