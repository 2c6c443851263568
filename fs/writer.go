package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/pdfoutline"
)

// Indentation used by each artifact kind.
const (
	OutlineIndent = "  "
	ReportIndent  = "    "
)

// Writer writes JSON artifacts into a directory. Each file is written to a
// temporary file in the same directory and renamed into place, so readers
// never see a partial artifact.
type Writer struct {
	dir string
}

// NewWriter creates a new Writer for dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteOutline writes a per-document outline artifact for the named PDF and
// returns the path written.
func (w *Writer) WriteOutline(pdfName string, r *pdfoutline.DocumentResult) (string, error) {
	return w.WriteJSON(OutputName(pdfName), r, OutlineIndent)
}

// WriteReport writes a ranking report under name and returns the path
// written.
func (w *Writer) WriteReport(name string, r *pdfoutline.RankingReport) (string, error) {
	return w.WriteJSON(name, r, ReportIndent)
}

// WriteJSON encodes v with the given indentation, leaving non-ASCII and
// HTML characters unescaped, and atomically writes it to name.
func (w *Writer) WriteJSON(name string, v any, indent string) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", pdfoutline.Errorf(pdfoutline.EINVALID, "invalid output name %q", name)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(w.dir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}

	path := filepath.Join(w.dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
