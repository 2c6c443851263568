package outline

import (
	"strings"

	"github.com/fwojciec/pdfoutline"
)

// FromTOC converts embedded bookmarks into outline entries. Entries deeper
// than H3 are dropped, not flattened. Titles are trimmed and blank titles
// skipped. Bookmarks whose destination did not resolve to a page point at
// page 1.
func FromTOC(toc []pdfoutline.TOCEntry) pdfoutline.Outline {
	out := pdfoutline.Outline{}
	for _, entry := range toc {
		level := pdfoutline.Level(entry.Level)
		if !level.Valid() {
			continue
		}
		text := strings.TrimSpace(entry.Title)
		if text == "" {
			continue
		}
		out = append(out, pdfoutline.OutlineEntry{Level: level, Text: text, Page: max(entry.Page, 1)})
	}
	return out
}
