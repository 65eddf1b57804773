package core

import (
	"fmt"
	"sort"
)

// Store is the in-memory collection of posts for one run.
//
// It is built in one shot by Service.Load and never mutated afterwards,
// which makes it safe for any number of concurrent readers without locking.
// All accessors return copies; callers cannot reach the backing slice.
type Store struct {
	posts []Post
	byID  map[string]int
}

// NewStore builds a store from posts in load order.
// Duplicate IDs keep the first occurrence.
func NewStore(posts []Post) *Store {
	s := &Store{
		posts: make([]Post, 0, len(posts)),
		byID:  make(map[string]int, len(posts)),
	}
	for _, p := range posts {
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.byID[p.ID] = len(s.posts)
		s.posts = append(s.posts, p)
	}
	return s
}

// Len returns the number of posts in the store.
func (s *Store) Len() int { return len(s.posts) }

// Posts returns all posts in load order.
func (s *Store) Posts() []Post {
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Get retrieves a post by ID. Returns ErrNotFound for unknown IDs.
func (s *Store) Get(id string) (Post, error) {
	i, ok := s.byID[id]
	if !ok {
		return Post{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.posts[i], nil
}

// SortedByDate returns the posts ordered by date. Descending (newest first)
// is the typical listing order. The sort is stable: posts sharing a date
// keep their original load order, so output is deterministic.
func (s *Store) SortedByDate(descending bool) []Post {
	out := s.Posts()
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// ByTag returns the subsequence of posts whose tag set contains tag,
// preserving original relative order. No match yields an empty slice.
func (s *Store) ByTag(tag string) []Post {
	out := make([]Post, 0)
	for _, p := range s.posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Tags returns every distinct tag in the store, sorted.
func (s *Store) Tags() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.posts {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}
