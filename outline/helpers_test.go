package outline_test

import (
	"strings"

	"github.com/fwojciec/pdfoutline"
)

// line builds a single-span line whose top edge sits at y.
func line(text string, size float64, font string, bold bool, y float64) pdfoutline.Line {
	flags := 0
	if bold {
		flags = pdfoutline.FlagBold
	}
	return pdfoutline.Line{
		BBox:  pdfoutline.Rect{X0: 72, Y0: y, X1: 500, Y1: y + size},
		Spans: []pdfoutline.Span{{Text: text, Size: size, Font: font, Flags: flags}},
	}
}

// repeat returns n body lines of the given style.
func repeat(n int, size float64, font string) []pdfoutline.Line {
	lines := make([]pdfoutline.Line, n)
	for i := range lines {
		lines[i] = line("Lorem ipsum dolor sit amet.", size, font, false, 300+float64(i)*12)
	}
	return lines
}

func page(lines ...[]pdfoutline.Line) pdfoutline.Page {
	p := pdfoutline.Page{Height: 792}
	for _, l := range lines {
		p.Lines = append(p.Lines, l...)
	}
	return p
}

func one(l pdfoutline.Line) []pdfoutline.Line {
	return []pdfoutline.Line{l}
}

func longText() string {
	return strings.Repeat("x", 150)
}
