package outline

import "github.com/fwojciec/pdfoutline"

// ExtractTitle picks the title from the first page. Lines whose top edge
// lies within the top band fraction of the page compete on their largest
// span size; the first line wins ties. Without such a line the first
// non-empty line anywhere on the page is used, and without that the title
// is "Untitled".
func ExtractTitle(page pdfoutline.Page, band float64) string {
	limit := page.Height * band

	var title string
	var best float64
	found := false
	for _, line := range page.Lines {
		if len(line.Spans) == 0 || line.BBox.Y0 >= limit {
			continue
		}
		text := line.Text()
		if text == "" {
			continue
		}
		if size := line.MaxSize(); !found || size > best {
			title, best, found = text, size, true
		}
	}
	if found {
		return title
	}

	for _, line := range page.Lines {
		if text := line.Text(); text != "" {
			return text
		}
	}
	return pdfoutline.UntitledTitle
}
