// Package fs provides file-system inputs and outputs for outline runs:
// PDF discovery, persona loading and atomic JSON artifacts.
package fs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/pdfoutline"
)

// PersonaFile is the persona file name looked up in an input directory.
const PersonaFile = "persona.json"

// DiscoverPDFs returns the names of regular files in dir whose extension
// is ".pdf" in any case, sorted by name.
func DiscoverPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, pdfoutline.Errorf(pdfoutline.ENOTFOUND, "input directory %q not found", dir)
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// OutputName maps a PDF file name to its outline artifact name by
// replacing the ".pdf" extension, in any case, with ".json".
func OutputName(pdfName string) string {
	ext := filepath.Ext(pdfName)
	if strings.EqualFold(ext, ".pdf") {
		pdfName = strings.TrimSuffix(pdfName, ext)
	}
	return pdfName + ".json"
}

// LoadPersona reads and validates a persona file.
// Returns ENOTFOUND if the file does not exist and EINVALID if it cannot
// be decoded or lacks a persona or job.
func LoadPersona(path string) (*pdfoutline.Persona, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, pdfoutline.Errorf(pdfoutline.ENOTFOUND, "%s not found", path)
	}
	if err != nil {
		return nil, err
	}

	var p pdfoutline.Persona
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, pdfoutline.Errorf(pdfoutline.EINVALID, "decode %s: %s", filepath.Base(path), err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
