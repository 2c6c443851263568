package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/pdfoutline"
	"github.com/fwojciec/pdfoutline/fs"
	"github.com/fwojciec/pdfoutline/rank"
)

// Run executes the rank command.
func (c *RankCmd) Run(deps *Dependencies) error {
	input := orDefault(c.Input, deps.Config.InputDir)
	output := orDefault(c.Output, deps.Config.OutputDir)

	persona, err := fs.LoadPersona(orDefault(c.Persona, filepath.Join(input, fs.PersonaFile)))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pdfoutline.ErrorMessage(err))
		return err
	}

	query, err := rank.BuildQuery(persona)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pdfoutline.ErrorMessage(err))
		return err
	}

	result, names, err := processDir(deps, input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pdfoutline.ErrorMessage(err))
		return err
	}

	sections, err := deps.Ranker.Rank(deps.Ctx, result.Outlines(), query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pdfoutline.ErrorMessage(err))
		return err
	}

	report := pdfoutline.NewRankingReport(names, persona, sections, deps.Now())
	path, err := fs.NewWriter(output).WriteReport(orDefault(c.Report, deps.Config.ReportName), report)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pdfoutline.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, renderSections(query, sections))
	fmt.Fprintf(deps.Stdout, "  Wrote %s\n", path)
	return nil
}
