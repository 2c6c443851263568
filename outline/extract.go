package outline

import "github.com/fwojciec/pdfoutline"

// ExtractHeadings walks every line in document order and emits an entry for
// each line whose first-span style is a heading style. Pages are numbered
// from 1. Lines with no text after trimming are skipped.
func ExtractHeadings(pages []pdfoutline.Page, styles pdfoutline.HeadingStyleMap) pdfoutline.Outline {
	out := pdfoutline.Outline{}
	if len(styles) == 0 {
		return out
	}
	for i, page := range pages {
		for _, line := range page.Lines {
			if len(line.Spans) == 0 {
				continue
			}
			level, ok := styles[pdfoutline.SignatureOf(line.Spans[0])]
			if !ok {
				continue
			}
			text := line.Text()
			if text == "" {
				continue
			}
			out = append(out, pdfoutline.OutlineEntry{Level: level, Text: text, Page: i + 1})
		}
	}
	return out
}

// Repair rewrites levels in place so that no H2 appears before the first H1
// and no H3 appears before the first H2. An orphan H2 becomes H1. An orphan
// H3 becomes H2 if an H1 has been seen, H1 otherwise. Entries are never
// reordered or removed, and repairing a repaired outline changes nothing.
func Repair(o pdfoutline.Outline) pdfoutline.Outline {
	var seenH1, seenH2 bool
	for i := range o {
		e := &o[i]
		switch {
		case e.Level == pdfoutline.H2 && !seenH1:
			e.Level = pdfoutline.H1
		case e.Level == pdfoutline.H3 && !seenH2:
			if seenH1 {
				e.Level = pdfoutline.H2
			} else {
				e.Level = pdfoutline.H1
			}
		}
		switch e.Level {
		case pdfoutline.H1:
			seenH1 = true
		case pdfoutline.H2:
			seenH2 = true
		}
	}
	return o
}
