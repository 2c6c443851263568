package pdf

import (
	"math"
	"strings"

	"github.com/fwojciec/pdfoutline"
	"github.com/ledongthuc/pdf"
)

const (
	// baselineTolerance is the fraction of the font size by which a glyph's
	// baseline may drift and still belong to the current line.
	baselineTolerance = 0.5
	// wordGap is the horizontal gap, as a fraction of the font size, above
	// which a space is inserted between glyphs.
	wordGap = 0.25
	// sizeEpsilon is the largest size difference treated as the same size.
	sizeEpsilon = 0.01
)

// lineBuilder accumulates glyphs that share a baseline.
type lineBuilder struct {
	baseline float64
	refSize  float64
	lastEnd  float64
	x0, x1   float64
	bottom   float64
	top      float64
	spans    []pdfoutline.Span
}

func newLineBuilder(g pdf.Text, size float64) *lineBuilder {
	b := &lineBuilder{
		baseline: g.Y,
		refSize:  size,
		x0:       g.X,
		x1:       g.X + g.W,
		bottom:   g.Y,
		top:      g.Y + size,
	}
	b.add(g, size)
	return b
}

// accepts reports whether g continues this line: same baseline within
// tolerance and no large jump back to the left.
func (b *lineBuilder) accepts(g pdf.Text, size float64) bool {
	ref := max(b.refSize, size, 1)
	if math.Abs(g.Y-b.baseline) > baselineTolerance*ref {
		return false
	}
	return g.X >= b.lastEnd-ref
}

func (b *lineBuilder) add(g pdf.Text, size float64) {
	text := g.S
	if len(b.spans) > 0 {
		last := b.spans[len(b.spans)-1].Text
		if g.X-b.lastEnd > wordGap*size && !strings.HasSuffix(last, " ") && !strings.HasPrefix(text, " ") {
			text = " " + text
		}
	}

	font, flags := fontStyle(g.Font)
	if n := len(b.spans); n > 0 && b.spans[n-1].Font == font && math.Abs(b.spans[n-1].Size-size) < sizeEpsilon {
		b.spans[n-1].Text += text
	} else {
		b.spans = append(b.spans, pdfoutline.Span{Text: text, Size: size, Font: font, Flags: flags})
	}

	b.lastEnd = g.X + g.W
	b.x0 = min(b.x0, g.X)
	b.x1 = max(b.x1, g.X+g.W)
	b.bottom = min(b.bottom, g.Y)
	b.top = max(b.top, g.Y+size)
	b.refSize = max(b.refSize, size)
}

// line returns the finished line with its bounding box flipped into
// top-left page space. pageTop is the upper edge of the MediaBox.
func (b *lineBuilder) line(pageTop float64) pdfoutline.Line {
	return pdfoutline.Line{
		BBox: pdfoutline.Rect{
			X0: b.x0,
			Y0: pageTop - b.top,
			X1: b.x1,
			Y1: pageTop - b.bottom,
		},
		Spans: b.spans,
	}
}

// groupLines folds glyphs, in content-stream order, into lines of spans.
func groupLines(glyphs []pdf.Text, pageTop float64) []pdfoutline.Line {
	var lines []pdfoutline.Line
	var cur *lineBuilder
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		size := math.Abs(g.FontSize)
		if cur != nil && !cur.accepts(g, size) {
			lines = append(lines, cur.line(pageTop))
			cur = nil
		}
		if cur == nil {
			cur = newLineBuilder(g, size)
			continue
		}
		cur.add(g, size)
	}
	if cur != nil {
		lines = append(lines, cur.line(pageTop))
	}
	return lines
}

// fontStyle strips a subset tag such as "ABCDEF+" from a font name and
// derives style flags from the remaining name.
func fontStyle(name string) (string, int) {
	if i := strings.IndexByte(name, '+'); i == 6 && isSubsetTag(name[:i]) {
		name = name[i+1:]
	}

	lower := strings.ToLower(name)
	flags := 0
	if containsAny(lower, "bold", "black", "heavy", "semibold", "demi") {
		flags |= pdfoutline.FlagBold
	}
	if containsAny(lower, "italic", "oblique") {
		flags |= pdfoutline.FlagItalic
	}
	if containsAny(lower, "mono", "courier", "consolas") {
		flags |= pdfoutline.FlagMonospace
	}
	if containsAny(lower, "times", "georgia", "garamond", "serif") && !strings.Contains(lower, "sans") {
		flags |= pdfoutline.FlagSerif
	}
	return name, flags
}

func isSubsetTag(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
