// Package pdf reads the text layer of PDF files into pdfoutline documents.
//
// Glyph positions, fonts and sizes come from github.com/ledongthuc/pdf.
// The embedded table of contents comes from pdfcpu's bookmark reader, which
// resolves outline destinations to page numbers.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fwojciec/pdfoutline"
	"github.com/ledongthuc/pdf"
)

// Compile-time interface verification.
var _ pdfoutline.DocumentReader = (*Reader)(nil)

// Reader implements pdfoutline.DocumentReader.
type Reader struct {
	// SkipTOC disables bookmark extraction, forcing style inference.
	SkipTOC bool
}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadDocument parses data into pages of lines and spans. Pages whose
// content stream cannot be decoded are kept with no lines. Failing to read
// bookmarks is not an error; the document then has no TOC.
func (r *Reader) ReadDocument(ctx context.Context, data []byte) (*pdfoutline.Document, error) {
	if len(data) == 0 {
		return nil, pdfoutline.Errorf(pdfoutline.EINVALID, "empty PDF")
	}

	pages, err := readPages(ctx, data)
	if err != nil {
		return nil, err
	}

	doc := &pdfoutline.Document{Pages: pages}
	if !r.SkipTOC {
		doc.TOC = readTOC(data)
	}
	return doc, nil
}

func readPages(ctx context.Context, data []byte) (pages []pdfoutline.Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages, err = nil, pdfoutline.Errorf(pdfoutline.EINVALID, "malformed PDF: %v", rec)
		}
	}()

	rd, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, pdfoutline.Errorf(pdfoutline.EINVALID, "open PDF: %v", err)
	}

	n := rd.NumPage()
	pages = make([]pdfoutline.Page, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("read page %d: %w", i, err)
		}
		pages = append(pages, readPage(rd.Page(i)))
	}
	return pages, nil
}

// readPage converts one page. A panic while decoding the content stream
// leaves the page without lines.
func readPage(p pdf.Page) (page pdfoutline.Page) {
	if p.V.IsNull() {
		return page
	}

	box := mediaBox(p.V)
	page.Height = box.height()

	defer func() {
		if recover() != nil {
			page.Lines = nil
		}
	}()
	page.Lines = groupLines(p.Content().Text, box.ury)
	return page
}

// US Letter, used when a page tree carries no MediaBox.
var defaultBox = rect{llx: 0, lly: 0, urx: 612, ury: 792}

type rect struct {
	llx, lly, urx, ury float64
}

func (r rect) height() float64 {
	return r.ury - r.lly
}

// mediaBox resolves the MediaBox of a page, following Parent links since
// the attribute is inheritable from the page tree.
func mediaBox(v pdf.Value) rect {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			x0, y0 := box.Index(0).Float64(), box.Index(1).Float64()
			x1, y1 := box.Index(2).Float64(), box.Index(3).Float64()
			r := rect{llx: min(x0, x1), lly: min(y0, y1), urx: max(x0, x1), ury: max(y0, y1)}
			if r.height() > 0 {
				return r
			}
		}
		v = v.Key("Parent")
	}
	return defaultBox
}
