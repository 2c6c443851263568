package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/pdfoutline"
)

var (
	fileStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	headerStyle = lipgloss.NewStyle().
			Bold(true)

	rankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Width(4)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// renderSections formats a ranking for the terminal, one section per line.
func renderSections(query string, sections []pdfoutline.RankedSection) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(query))
	if len(sections) == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("No sections found."))
		return b.String()
	}
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(rankStyle.Render(fmt.Sprintf("%d.", s.ImportanceRank)))
		b.WriteString(s.SectionTitle)
		b.WriteString(" ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("(%s, p. %d)", s.Document, s.PageNumber)))
	}
	return b.String()
}
