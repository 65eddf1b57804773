package render

import (
	"fmt"
	"strings"

	"github.com/inkpress/inkpress/pkg/core"
)

// Text renders a post as plain text: a small header followed by the body
// verbatim. The body's markup convention is left to the reader.
func Text(p core.Post) string {
	var b strings.Builder
	b.WriteString(p.Title)
	b.WriteString("\n")
	b.WriteString(p.Date.Format("2006-01-02"))
	if len(p.Tags) > 0 {
		fmt.Fprintf(&b, "\ntags: %s", strings.Join(p.Tags, ", "))
	}
	b.WriteString("\n\n")
	b.WriteString(p.Body)
	return b.String()
}
