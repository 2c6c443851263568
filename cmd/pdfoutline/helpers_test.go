package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/pdfoutline"
	"github.com/fwojciec/pdfoutline/batch"
	main "github.com/fwojciec/pdfoutline/cmd/pdfoutline"
	"github.com/fwojciec/pdfoutline/config"
	"github.com/fwojciec/pdfoutline/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 7, 10, 15, 31, 22, 632389000, time.UTC)

// writeFiles creates files in dir from a name to content map.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

// newDeps returns dependencies whose processor treats file content as the
// document title and fails on files containing "broken".
func newDeps(t *testing.T) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Config: config.Default(),
		Now:    func() time.Time { return fixedNow },
		Processor: &batch.Processor{
			Reader: &mock.DocumentReader{
				ReadDocumentFn: func(_ context.Context, data []byte) (*pdfoutline.Document, error) {
					if string(data) == "broken" {
						return nil, pdfoutline.Errorf(pdfoutline.EINVALID, "not a PDF")
					}
					return &pdfoutline.Document{Pages: []pdfoutline.Page{{
						Height: 792,
						Lines:  []pdfoutline.Line{{Spans: []pdfoutline.Span{{Text: string(data), Size: 20}}}},
					}}}, nil
				},
			},
			Outliner: &mock.Outliner{
				BuildFn: func(doc *pdfoutline.Document) *pdfoutline.DocumentResult {
					title := doc.Pages[0].Lines[0].Text()
					return &pdfoutline.DocumentResult{
						Title:   title,
						Outline: pdfoutline.Outline{{Level: pdfoutline.H1, Text: title + " Overview", Page: 1}},
					}
				},
			},
		},
	}
	return deps, stdout, stderr
}
