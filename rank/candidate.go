package rank

import (
	"strings"

	"github.com/fwojciec/pdfoutline"
	"github.com/fwojciec/pdfoutline/bloom"
)

// Candidate is an outline entry eligible for ranking.
type Candidate struct {
	Document string
	Page     int
	Title    string
	// Text is what gets embedded: the document title and the heading.
	Text string
}

// Candidates flattens the outlines of docs in order and keeps the first
// entry for each heading text, compared case-insensitively after trimming.
func Candidates(docs []pdfoutline.NamedResult) []Candidate {
	var n int
	for _, d := range docs {
		if d.Result != nil {
			n += len(d.Result.Outline)
		}
	}

	seen := bloom.NewSet(uint(n))
	out := make([]Candidate, 0, n)
	for _, d := range docs {
		if d.Result == nil {
			continue
		}
		for _, e := range d.Result.Outline {
			key := strings.ToLower(strings.TrimSpace(e.Text))
			if !seen.Add(key) {
				continue
			}
			out = append(out, Candidate{
				Document: d.Name,
				Page:     e.Page,
				Title:    e.Text,
				Text:     d.Result.Title + " " + e.Text,
			})
		}
	}
	return out
}
