package pdf

import (
	"bytes"

	"github.com/fwojciec/pdfoutline"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// readTOC returns the document's bookmarks, or nil if it has none or they
// cannot be read.
func readTOC(data []byte) (toc []pdfoutline.TOCEntry) {
	defer func() {
		if recover() != nil {
			toc = nil
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	bookmarks, err := api.Bookmarks(bytes.NewReader(data), conf)
	if err != nil {
		return nil
	}
	return TOCFromBookmarks(bookmarks)
}

// TOCFromBookmarks flattens a bookmark tree depth-first. Top-level
// bookmarks are level 1.
func TOCFromBookmarks(bookmarks []pdfcpu.Bookmark) []pdfoutline.TOCEntry {
	var toc []pdfoutline.TOCEntry
	var walk func(bms []pdfcpu.Bookmark, level int)
	walk = func(bms []pdfcpu.Bookmark, level int) {
		for _, bm := range bms {
			toc = append(toc, pdfoutline.TOCEntry{Level: level, Title: bm.Title, Page: bm.PageFrom})
			walk(bm.Kids, level+1)
		}
	}
	walk(bookmarks, 1)
	return toc
}
