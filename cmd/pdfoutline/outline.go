package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/pdfoutline"
	"github.com/fwojciec/pdfoutline/batch"
	"github.com/fwojciec/pdfoutline/fs"
)

// Run executes the outline command.
func (c *OutlineCmd) Run(deps *Dependencies) error {
	input := orDefault(c.Input, deps.Config.InputDir)
	output := orDefault(c.Output, deps.Config.OutputDir)

	result, names, err := processDir(deps, input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pdfoutline.ErrorMessage(err))
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(deps.Stdout, "No PDF files found in %s\n", input)
		return nil
	}

	writer := fs.NewWriter(output)
	var written int
	for _, doc := range result.Documents {
		if doc.Err != nil {
			continue
		}
		if _, err := writer.WriteOutline(doc.Name, doc.Result); err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", doc.Name, pdfoutline.ErrorMessage(err))
			continue
		}
		written++
		if c.Print {
			fmt.Fprintf(deps.Stdout, "\n%s\n", fileStyle.Render(doc.Name))
			fmt.Fprintln(deps.Stdout, pdfoutline.FormatOutline(doc.Result))
		}
	}

	fmt.Fprintf(deps.Stdout, "  Wrote %d outlines to %s (%d cached, %d failed)\n",
		written, output, result.Cached, len(names)-written)
	return nil
}

// processDir discovers the PDF files in dir and builds their outlines,
// reporting progress on the dependency writers.
func processDir(deps *Dependencies, dir string) (*batch.Result, []string, error) {
	names, err := fs.DiscoverPDFs(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(names) == 0 {
		return &batch.Result{}, names, nil
	}

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}

	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d PDF files\n", event.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Name, pdfoutline.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Processor.Process(deps.Ctx, paths, progress)
	if err != nil {
		return nil, nil, err
	}
	return result, names, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
