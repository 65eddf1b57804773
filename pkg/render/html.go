// Package render turns posts into display-ready representations.
//
// Every renderer here is a pure function of its input: rendering the same
// post twice yields byte-identical output.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/inkpress/inkpress/pkg/core"
)

// HTMLRenderer converts post bodies from Markdown to HTML.
type HTMLRenderer struct {
	md goldmark.Markdown
}

// NewHTML creates an HTML renderer with GitHub-flavored extensions enabled.
func NewHTML() *HTMLRenderer {
	return &HTMLRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Body renders only the post body as HTML.
func (r *HTMLRenderer) Body(p core.Post) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(p.Body), &buf); err != nil {
		return "", fmt.Errorf("failed to render body of %s: %w", p.ID, err)
	}
	return buf.String(), nil
}

// Page renders a full display-ready article: title, date, and tags header
// followed by the rendered body.
func (r *HTMLRenderer) Page(p core.Post) (string, error) {
	body, err := r.Body(p)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<article>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(p.Title))
	fmt.Fprintf(&b, "<time datetime=%q>%s</time>\n", p.Date.Format("2006-01-02"), p.Date.Format("January 2, 2006"))
	if len(p.Tags) > 0 {
		b.WriteString("<ul class=\"tags\">\n")
		for _, t := range p.Tags {
			fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(t))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString(body)
	b.WriteString("</article>\n")
	return b.String(), nil
}
