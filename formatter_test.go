package pdfoutline_test

import (
	"testing"

	"github.com/fwojciec/pdfoutline"
	"github.com/stretchr/testify/assert"
)

func TestFormatOutline(t *testing.T) {
	t.Parallel()

	t.Run("indents headings by level", func(t *testing.T) {
		t.Parallel()

		result := &pdfoutline.DocumentResult{
			Title: "Annual Report",
			Outline: pdfoutline.Outline{
				{Level: pdfoutline.H1, Text: "Introduction", Page: 1},
				{Level: pdfoutline.H2, Text: "Scope", Page: 2},
				{Level: pdfoutline.H3, Text: "Limits", Page: 2},
			},
		}

		expected := "Annual Report\n" +
			"  H1 Introduction (p. 1)\n" +
			"    H2 Scope (p. 2)\n" +
			"      H3 Limits (p. 2)"
		assert.Equal(t, expected, pdfoutline.FormatOutline(result))
	})

	t.Run("renders title alone for empty outline", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Untitled", pdfoutline.FormatOutline(pdfoutline.EmptyResult()))
	})

	t.Run("returns empty string for nil result", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, pdfoutline.FormatOutline(nil))
	})
}
