package pdfoutline

import (
	"context"
	"strings"
)

// Span flag bits. FlagBold is the only bit the outline heuristic reads.
const (
	FlagSuperscript = 1 << 0
	FlagItalic      = 1 << 1
	FlagSerif       = 1 << 2
	FlagMonospace   = 1 << 3
	FlagBold        = 1 << 4
)

// Span is a run of text sharing one font and size.
type Span struct {
	Text  string  `json:"text"`
	Size  float64 `json:"size"`
	Font  string  `json:"font"`
	Flags int     `json:"flags"`
}

// Bold reports whether the span's bold bit is set.
func (s Span) Bold() bool {
	return s.Flags&FlagBold != 0
}

// Rect is an axis-aligned box in page space. The origin is the top-left
// corner of the page and Y grows downward, so Y0 is the top edge.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Line is a visual line of text made of one or more spans.
type Line struct {
	BBox  Rect   `json:"bbox"`
	Spans []Span `json:"spans"`
}

// Text returns the concatenated span text with surrounding whitespace removed.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return strings.TrimSpace(b.String())
}

// MaxSize returns the largest span size on the line, or 0 if it has no spans.
func (l Line) MaxSize() float64 {
	var size float64
	for _, s := range l.Spans {
		if s.Size > size {
			size = s.Size
		}
	}
	return size
}

// Page is a single page of a document. Lines are in content-stream order.
type Page struct {
	Height float64 `json:"height"`
	Lines  []Line  `json:"lines"`
}

// TOCEntry is one bookmark from a document's embedded table of contents.
// Level is 1-based and may exceed 3.
type TOCEntry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Page  int    `json:"page"`
}

// Document is the parsed text layer of a PDF file.
type Document struct {
	Pages []Page     `json:"pages"`
	TOC   []TOCEntry `json:"toc"`
}

// DocumentReader parses raw PDF bytes into a Document.
type DocumentReader interface {
	// ReadDocument parses data into pages, lines and spans, plus the
	// embedded table of contents if one exists.
	// Returns EINVALID if data is not a readable PDF.
	ReadDocument(ctx context.Context, data []byte) (*Document, error)
}
