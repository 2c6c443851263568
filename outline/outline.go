// Package outline infers a document's heading hierarchy from typography.
//
// Documents with an embedded table of contents use it directly. Otherwise
// the most frequent line styles are treated as body text, the largest of
// the remaining styles become H1 to H3, and the resulting sequence is
// repaired so that every H2 follows an H1 and every H3 follows an H2.
package outline

import "fmt"

// Options holds the heuristic's tunable constants.
type Options struct {
	// CommonStyles is how many of the most frequent styles count as body text.
	CommonStyles int
	// MaxHeadingLength is the exclusive upper bound, in characters, on the
	// length of a line that can support a heading style.
	MaxHeadingLength int
	// TitleBand is the fraction of the first page's height, measured from
	// the top, in which title candidates are searched.
	TitleBand float64
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		CommonStyles:     3,
		MaxHeadingLength: 150,
		TitleBand:        0.3,
	}
}

// withDefaults fills zero or negative fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.CommonStyles <= 0 {
		o.CommonStyles = d.CommonStyles
	}
	if o.MaxHeadingLength <= 0 {
		o.MaxHeadingLength = d.MaxHeadingLength
	}
	if o.TitleBand <= 0 || o.TitleBand > 1 {
		o.TitleBand = d.TitleBand
	}
	return o
}

// Key identifies the effective tuning. Outlines cached under one key are
// not reused under another.
func (o Options) Key() string {
	o = o.withDefaults()
	return fmt.Sprintf("outline/v1 styles=%d len=%d band=%g", o.CommonStyles, o.MaxHeadingLength, o.TitleBand)
}
