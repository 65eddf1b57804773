package fs

import (
	"errors"
	"testing"
	"time"

	"github.com/inkpress/inkpress/pkg/core"
)

func TestBuildPost(t *testing.T) {
	t.Run("Round Trip of Valid Fields", func(t *testing.T) {
		u := &unit{
			Meta: core.Metadata{
				"title":  "A",
				"date":   time.Date(2020, 1, 20, 0, 0, 0, 0, time.UTC),
				"tags":   []any{"nodejs", "cli"},
				"author": "jane",
			},
			Body: "content",
		}

		p, err := buildPost("a", u)
		if err != nil {
			t.Fatalf("buildPost failed: %v", err)
		}

		if p.Title != "A" {
			t.Errorf("unexpected title: %s", p.Title)
		}
		if !p.Date.Equal(time.Date(2020, 1, 20, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected date: %s", p.Date)
		}
		if len(p.Tags) != 2 || p.Tags[0] != "nodejs" {
			t.Errorf("unexpected tags: %v", p.Tags)
		}
		if p.Meta["author"] != "jane" {
			t.Errorf("residual metadata lost: %v", p.Meta)
		}
		if _, ok := p.Meta["title"]; ok {
			t.Error("structured fields must not leak into Meta")
		}
	})

	t.Run("Date as String", func(t *testing.T) {
		for _, val := range []string{"2020-01-20", "2020-01-20T15:04:05Z", "2020-01-20 15:04:05"} {
			u := &unit{Meta: core.Metadata{"title": "X", "date": val}}
			p, err := buildPost("x", u)
			if err != nil {
				t.Errorf("date %q rejected: %v", val, err)
				continue
			}
			if p.Date.Year() != 2020 {
				t.Errorf("date %q parsed wrong: %s", val, p.Date)
			}
		}
	})

	t.Run("Single Tag String", func(t *testing.T) {
		u := &unit{Meta: core.Metadata{"title": "X", "date": "2020-01-20", "tags": "solo"}}
		p, err := buildPost("x", u)
		if err != nil {
			t.Fatalf("buildPost failed: %v", err)
		}
		if len(p.Tags) != 1 || p.Tags[0] != "solo" {
			t.Errorf("unexpected tags: %v", p.Tags)
		}
	})

	t.Run("Missing Title", func(t *testing.T) {
		u := &unit{Meta: core.Metadata{"date": "2020-01-20"}}
		_, err := buildPost("x", u)

		var malformed *core.MalformedMetadataError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected MalformedMetadataError, got %v", err)
		}
		if malformed.Reason != "missing title" {
			t.Errorf("unexpected reason: %s", malformed.Reason)
		}
	})

	t.Run("Missing Date", func(t *testing.T) {
		u := &unit{Meta: core.Metadata{"title": "X"}}
		_, err := buildPost("x", u)

		var malformed *core.MalformedMetadataError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected MalformedMetadataError, got %v", err)
		}
		if malformed.Reason != "missing date" {
			t.Errorf("unexpected reason: %s", malformed.Reason)
		}
	})

	t.Run("Unparseable Date", func(t *testing.T) {
		u := &unit{Meta: core.Metadata{"title": "X", "date": "someday"}}
		_, err := buildPost("x", u)

		var malformed *core.MalformedMetadataError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected MalformedMetadataError, got %v", err)
		}
		if malformed.Reason != "unparseable date" {
			t.Errorf("unexpected reason: %s", malformed.Reason)
		}
	})

	t.Run("Non-String Tag", func(t *testing.T) {
		u := &unit{Meta: core.Metadata{"title": "X", "date": "2020-01-20", "tags": []any{"ok", 7}}}
		if _, err := buildPost("x", u); err == nil {
			t.Error("expected error for non-string tag")
		}
	})

	t.Run("Empty Tags Allowed", func(t *testing.T) {
		u := &unit{Meta: core.Metadata{"title": "X", "date": "2020-01-20"}}
		p, err := buildPost("x", u)
		if err != nil {
			t.Fatalf("buildPost failed: %v", err)
		}
		if len(p.Tags) != 0 {
			t.Errorf("expected no tags, got %v", p.Tags)
		}
	})
}
