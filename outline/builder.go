package outline

import "github.com/fwojciec/pdfoutline"

// Compile-time interface verification.
var _ pdfoutline.Outliner = (*Builder)(nil)

// Builder implements pdfoutline.Outliner.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder. Zero-valued options take their defaults.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts.withDefaults()}
}

// Build returns the title and outline of doc. A non-empty table of contents
// is used as the outline; otherwise headings are inferred from styles and
// repaired.
func (b *Builder) Build(doc *pdfoutline.Document) *pdfoutline.DocumentResult {
	result := pdfoutline.EmptyResult()
	if doc == nil {
		return result
	}

	if len(doc.Pages) > 0 {
		result.Title = ExtractTitle(doc.Pages[0], b.opts.TitleBand)
	}

	if len(doc.TOC) > 0 {
		result.Outline = FromTOC(doc.TOC)
		return result
	}

	styles := SelectHeadingStyles(doc.Pages, Profile(doc.Pages), b.opts)
	result.Outline = Repair(ExtractHeadings(doc.Pages, styles))
	return result
}
