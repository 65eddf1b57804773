package fs

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/inkpress/inkpress/pkg/core"
)

// validate checks the structured front-matter fields after coercion.
var validate = validator.New(validator.WithRequiredStructEnabled())

// frontMatter holds the structured fields every post must carry.
// Residual keys stay in the unit metadata and are passed through untouched.
type frontMatter struct {
	Title string    `validate:"required"`
	Date  time.Time `validate:"required"`
	Tags  []string
}

// dateLayouts are the accepted string representations for the date field,
// tried in order. Native YAML timestamps arrive as time.Time already.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// buildPost coerces a decoded unit into a Post, enforcing the metadata
// invariants: title present and non-empty, date present and parseable.
// Failures come back as *core.MalformedMetadataError so the caller can
// skip the unit and keep loading.
func buildPost(id string, u *unit) (core.Post, error) {
	var fm frontMatter

	if raw, ok := u.Meta["title"]; ok {
		s, ok := raw.(string)
		if !ok {
			return core.Post{}, &core.MalformedMetadataError{ID: id, Reason: "title is not a string"}
		}
		fm.Title = s
	}

	if raw, ok := u.Meta["date"]; ok {
		d, err := coerceDate(raw)
		if err != nil {
			return core.Post{}, &core.MalformedMetadataError{ID: id, Reason: "unparseable date", Err: err}
		}
		fm.Date = d
	}

	if raw, ok := u.Meta["tags"]; ok {
		tags, err := coerceTags(raw)
		if err != nil {
			return core.Post{}, &core.MalformedMetadataError{ID: id, Reason: "malformed tags", Err: err}
		}
		fm.Tags = tags
	}

	if err := validate.Struct(fm); err != nil {
		var errs validator.ValidationErrors
		reason := "invalid front matter"
		if errors.As(err, &errs) && len(errs) > 0 {
			switch errs[0].Field() {
			case "Title":
				reason = "missing title"
			case "Date":
				reason = "missing date"
			}
		}
		return core.Post{}, &core.MalformedMetadataError{ID: id, Reason: reason, Err: err}
	}

	meta := make(core.Metadata, len(u.Meta))
	for k, v := range u.Meta {
		switch k {
		case "title", "date", "tags":
			continue
		}
		meta[k] = v
	}

	return core.Post{
		ID:    id,
		Title: fm.Title,
		Date:  fm.Date,
		Tags:  fm.Tags,
		Meta:  meta,
		Body:  u.Body,
	}, nil
}

func coerceDate(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, v); err == nil {
				return d, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date format: %q", v)
	default:
		return time.Time{}, fmt.Errorf("date has unsupported type %T", raw)
	}
}

func coerceTags(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("tag has unsupported type %T", item)
			}
			tags = append(tags, s)
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("tags have unsupported type %T", raw)
	}
}
