package render_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/pkg/core"
	"github.com/inkpress/inkpress/pkg/render"
)

func feedPosts() []core.Post {
	return []core.Post{
		{ID: "a", Title: "A", Date: time.Date(2020, 1, 20, 0, 0, 0, 0, time.UTC), Body: "first"},
		{ID: "b", Title: "B", Date: time.Date(2019, 12, 24, 0, 0, 0, 0, time.UTC), Body: "second"},
	}
}

func TestFeedBuild(t *testing.T) {
	b := render.NewFeed("My Blog", "https://example.com", "essays")

	feed, err := b.Build(feedPosts())
	require.NoError(t, err)

	require.Len(t, feed.Items, 2)
	assert.Equal(t, "A", feed.Items[0].Title)
	assert.Equal(t, "https://example.com/a", feed.Items[0].Link.Href)
	assert.Equal(t, time.Date(2020, 1, 20, 0, 0, 0, 0, time.UTC), feed.Created)
}

func TestFeedRSS(t *testing.T) {
	b := render.NewFeed("My Blog", "https://example.com", "essays")

	out, err := b.RSS(feedPosts())
	require.NoError(t, err)

	assert.Contains(t, out, "<rss")
	assert.Contains(t, out, "<title>A</title>")
	assert.Contains(t, out, "<title>B</title>")

	again, err := b.RSS(feedPosts())
	require.NoError(t, err)
	assert.Equal(t, out, again, "repeat renders must be byte-identical")
}

func TestFeedAtom(t *testing.T) {
	b := render.NewFeed("My Blog", "https://example.com", "essays")

	out, err := b.Atom(feedPosts())
	require.NoError(t, err)

	assert.Contains(t, out, "<feed")
	assert.Contains(t, out, "https://example.com/a")
}
