package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/inkpress/inkpress/pkg/core"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func samplePosts() []core.Post {
	return []core.Post{
		{ID: "a", Title: "A", Date: date("2020-01-20"), Tags: []string{"nodejs"}},
		{ID: "b", Title: "B", Date: date("2019-12-24"), Tags: []string{"angular", "testing"}},
		{ID: "c", Title: "C", Date: date("2020-01-20"), Tags: []string{"nodejs", "testing"}},
	}
}

func TestStoreSortedByDate(t *testing.T) {
	store := core.NewStore(samplePosts())

	t.Run("Descending Order", func(t *testing.T) {
		posts := store.SortedByDate(true)
		if len(posts) != store.Len() {
			t.Fatalf("expected %d posts, got %d", store.Len(), len(posts))
		}
		for i := 1; i < len(posts); i++ {
			if posts[i].Date.After(posts[i-1].Date) {
				t.Errorf("order violated at %d: %s after %s", i, posts[i].ID, posts[i-1].ID)
			}
		}
	})

	t.Run("Stable on Equal Dates", func(t *testing.T) {
		posts := store.SortedByDate(true)
		// a and c share a date; load order must be preserved.
		if posts[0].ID != "a" || posts[1].ID != "c" {
			t.Errorf("expected [a c ...], got [%s %s ...]", posts[0].ID, posts[1].ID)
		}
	})

	t.Run("Ascending Order", func(t *testing.T) {
		posts := store.SortedByDate(false)
		if posts[0].ID != "b" {
			t.Errorf("expected oldest first, got %s", posts[0].ID)
		}
	})

	t.Run("Does Not Mutate Load Order", func(t *testing.T) {
		store.SortedByDate(true)
		posts := store.Posts()
		if posts[0].ID != "a" || posts[1].ID != "b" || posts[2].ID != "c" {
			t.Errorf("load order changed: %v", []string{posts[0].ID, posts[1].ID, posts[2].ID})
		}
	})
}

func TestStoreByTag(t *testing.T) {
	store := core.NewStore(samplePosts())

	t.Run("Filters and Preserves Order", func(t *testing.T) {
		posts := store.ByTag("testing")
		if len(posts) != 2 {
			t.Fatalf("expected 2 posts, got %d", len(posts))
		}
		if posts[0].ID != "b" || posts[1].ID != "c" {
			t.Errorf("expected [b c], got [%s %s]", posts[0].ID, posts[1].ID)
		}
	})

	t.Run("Unknown Tag Yields Empty Slice", func(t *testing.T) {
		posts := store.ByTag("golang")
		if posts == nil {
			t.Error("expected empty slice, got nil")
		}
		if len(posts) != 0 {
			t.Errorf("expected 0 posts, got %d", len(posts))
		}
	})
}

func TestStoreGet(t *testing.T) {
	store := core.NewStore(samplePosts())

	t.Run("Known ID", func(t *testing.T) {
		p, err := store.Get("b")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if p.Title != "B" {
			t.Errorf("expected title B, got %s", p.Title)
		}
	})

	t.Run("Unknown ID", func(t *testing.T) {
		_, err := store.Get("ghost")
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestStoreTags(t *testing.T) {
	store := core.NewStore(samplePosts())

	tags := store.Tags()
	want := []string{"angular", "nodejs", "testing"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("expected %v, got %v", want, tags)
			break
		}
	}
}

func TestStoreDuplicateIDs(t *testing.T) {
	posts := samplePosts()
	posts = append(posts, core.Post{ID: "a", Title: "Shadow", Date: date("2021-01-01")})

	store := core.NewStore(posts)
	if store.Len() != 3 {
		t.Fatalf("expected 3 posts, got %d", store.Len())
	}
	p, _ := store.Get("a")
	if p.Title != "A" {
		t.Errorf("first occurrence should win, got %s", p.Title)
	}
}
