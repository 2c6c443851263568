package pdfoutline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"
)

// UntitledTitle is the title used when a document has no usable text.
const UntitledTitle = "Untitled"

// OutlineEntry is a single heading in a document outline.
type OutlineEntry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *OutlineEntry) Validate() error {
	if !e.Level.Valid() {
		return Errorf(EINVALID, "outline entry level %d out of range", int(e.Level))
	}
	if strings.TrimSpace(e.Text) == "" {
		return Errorf(EINVALID, "outline entry text required")
	}
	if e.Page < 1 {
		return Errorf(EINVALID, "outline entry page must be positive")
	}
	return nil
}

// Outline is an ordered list of headings in document order.
type Outline []OutlineEntry

// MarshalJSON encodes a nil outline as an empty array. HTML characters are
// left unescaped; an enclosing encoder applies its own escaping setting.
func (o Outline) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]OutlineEntry(o)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DocumentResult is the per-document outline artifact.
type DocumentResult struct {
	Title   string  `json:"title"`
	Outline Outline `json:"outline"`
}

// Validate returns an error if the result or any of its entries is invalid.
func (r *DocumentResult) Validate() error {
	if r.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	for i := range r.Outline {
		if err := r.Outline[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EmptyResult returns the result used for documents with no readable text.
func EmptyResult() *DocumentResult {
	return &DocumentResult{Title: UntitledTitle, Outline: Outline{}}
}

// NamedResult pairs a document result with the file name it came from.
type NamedResult struct {
	Name   string
	Result *DocumentResult
}

// Outliner builds an outline from a parsed document.
type Outliner interface {
	// Build never fails: documents without usable text produce an
	// "Untitled" result with an empty outline.
	Build(doc *Document) *DocumentResult
}

// OutlineRecord is a stored outline keyed by the hash of the PDF bytes it
// was built from.
type OutlineRecord struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ContentHash string          `json:"contentHash"`
	Result      *DocumentResult `json:"result"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *OutlineRecord) Validate() error {
	if r.ContentHash == "" {
		return Errorf(EINVALID, "outline content hash required")
	}
	if r.Result == nil {
		return Errorf(EINVALID, "outline result required")
	}
	return r.Result.Validate()
}

// OutlineService represents a service for caching built outlines.
type OutlineService interface {
	// FindOutlineByHash retrieves the outline built from content with the
	// given hash. Returns ENOTFOUND if no such outline is stored.
	FindOutlineByHash(ctx context.Context, hash string) (*OutlineRecord, error)

	// CreateOutline stores an outline. Returns ECONFLICT if an outline with
	// the same content hash already exists.
	CreateOutline(ctx context.Context, rec *OutlineRecord) error

	// DeleteOutlines removes every stored outline.
	DeleteOutlines(ctx context.Context) error
}
