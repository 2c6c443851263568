package outline

import (
	"sort"
	"unicode/utf8"

	"github.com/fwojciec/pdfoutline"
)

// Profile counts the style signature of the first span of every line that
// has spans, across all pages.
func Profile(pages []pdfoutline.Page) *pdfoutline.StyleFrequencyTable {
	table := pdfoutline.NewStyleFrequencyTable()
	for _, page := range pages {
		for _, line := range page.Lines {
			if len(line.Spans) == 0 {
				continue
			}
			table.Add(pdfoutline.SignatureOf(line.Spans[0]))
		}
	}
	return table
}

// MostFrequent returns up to n signatures ordered by descending count.
// Signatures with equal counts keep first-seen order.
func MostFrequent(table *pdfoutline.StyleFrequencyTable, n int) []pdfoutline.StyleSignature {
	sigs := table.Signatures()
	sort.SliceStable(sigs, func(i, j int) bool {
		return table.Count(sigs[i]) > table.Count(sigs[j])
	})
	if n < len(sigs) {
		sigs = sigs[:max(n, 0)]
	}
	return sigs
}

// SelectHeadingStyles picks up to three heading styles. The opts.CommonStyles
// most frequent signatures are excluded as body text. Each remaining
// signature is a candidate if at least one of its lines is non-empty and
// shorter than opts.MaxHeadingLength characters. Candidates are ordered by
// size, then by number of such short lines, both descending, and the first
// three become H1, H2 and H3.
func SelectHeadingStyles(pages []pdfoutline.Page, freq *pdfoutline.StyleFrequencyTable, opts Options) pdfoutline.HeadingStyleMap {
	opts = opts.withDefaults()

	common := make(map[pdfoutline.StyleSignature]struct{})
	for _, sig := range MostFrequent(freq, opts.CommonStyles) {
		common[sig] = struct{}{}
	}

	candidates := pdfoutline.NewStyleFrequencyTable()
	for _, page := range pages {
		for _, line := range page.Lines {
			if len(line.Spans) == 0 {
				continue
			}
			sig := pdfoutline.SignatureOf(line.Spans[0])
			if _, ok := common[sig]; ok {
				continue
			}
			text := line.Text()
			if text == "" || utf8.RuneCountInString(text) >= opts.MaxHeadingLength {
				continue
			}
			candidates.Add(sig)
		}
	}

	ranked := candidates.Signatures()
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Size != ranked[j].Size {
			return ranked[i].Size > ranked[j].Size
		}
		return candidates.Count(ranked[i]) > candidates.Count(ranked[j])
	})

	styles := make(pdfoutline.HeadingStyleMap)
	for i, sig := range ranked {
		level := pdfoutline.Level(i + 1)
		if !level.Valid() {
			break
		}
		styles[sig] = level
	}
	return styles
}
