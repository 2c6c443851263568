package pdfoutline

import (
	"fmt"
	"strings"
)

// FormatOutline renders a document result as an indented tree for display.
// Each heading is indented two spaces per level below the title.
func FormatOutline(r *DocumentResult) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(r.Title)
	for _, e := range r.Outline {
		depth := int(e.Level)
		if depth < 1 {
			depth = 1
		}
		fmt.Fprintf(&b, "\n%s%s %s (p. %d)", strings.Repeat("  ", depth), e.Level, e.Text, e.Page)
	}
	return b.String()
}
