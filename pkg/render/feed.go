package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"

	"github.com/inkpress/inkpress/pkg/core"
)

// FeedBuilder produces RSS/Atom feeds from a post listing.
type FeedBuilder struct {
	Title       string
	Link        string // site base URL, items link to {Link}/{id}
	Description string
	Author      string

	html *HTMLRenderer
}

// NewFeed creates a feed builder for the given site identity.
func NewFeed(title, link, description string) *FeedBuilder {
	return &FeedBuilder{
		Title:       title,
		Link:        link,
		Description: description,
		html:        NewHTML(),
	}
}

// Build assembles a feed from the posts, newest first. The feed timestamp
// is the newest post date, keeping output deterministic for a given store.
func (b *FeedBuilder) Build(posts []core.Post) (*feeds.Feed, error) {
	feed := &feeds.Feed{
		Title:       b.Title,
		Link:        &feeds.Link{Href: b.Link},
		Description: b.Description,
	}
	if b.Author != "" {
		feed.Author = &feeds.Author{Name: b.Author}
	}

	var newest time.Time
	for _, post := range posts {
		body, err := b.html.Body(post)
		if err != nil {
			return nil, err
		}

		href := strings.TrimSuffix(b.Link, "/") + "/" + post.ID
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: href},
			Id:          href,
			Created:     post.Date,
			Description: body,
		})

		if post.Date.After(newest) {
			newest = post.Date
		}
	}
	feed.Created = newest

	return feed, nil
}

// RSS renders the posts as an RSS 2.0 document.
func (b *FeedBuilder) RSS(posts []core.Post) (string, error) {
	feed, err := b.Build(posts)
	if err != nil {
		return "", err
	}
	out, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("failed to render rss: %w", err)
	}
	return out, nil
}

// Atom renders the posts as an Atom document.
func (b *FeedBuilder) Atom(posts []core.Post) (string, error) {
	feed, err := b.Build(posts)
	if err != nil {
		return "", err
	}
	out, err := feed.ToAtom()
	if err != nil {
		return "", fmt.Errorf("failed to render atom: %w", err)
	}
	return out, nil
}
