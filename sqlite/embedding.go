package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/pdfoutline"
)

// Compile-time interface verification.
var _ pdfoutline.Embedder = (*EmbeddingCache)(nil)

// EmbeddingCache wraps an Embedder and stores every vector it produces,
// keyed by model and text. Only texts missing from the cache are passed
// to the wrapped Embedder.
type EmbeddingCache struct {
	db    *DB
	next  pdfoutline.Embedder
	model string
}

// NewEmbeddingCache creates a new EmbeddingCache. model namespaces the
// stored vectors so switching models never returns stale entries.
func NewEmbeddingCache(db *DB, next pdfoutline.Embedder, model string) *EmbeddingCache {
	return &EmbeddingCache{db: db, next: next, model: model}
}

// Embed returns cached vectors where available and embeds the rest.
func (c *EmbeddingCache) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	// Positions of each text still to embed, grouped so duplicates in one
	// call are embedded once.
	pending := make(map[string][]int)
	var missing []string
	for i, text := range texts {
		if idx, ok := pending[text]; ok {
			pending[text] = append(idx, i)
			continue
		}
		vec, err := c.lookup(ctx, text)
		if err != nil {
			return nil, err
		}
		if vec != nil {
			out[i] = vec
			continue
		}
		pending[text] = []int{i}
		missing = append(missing, text)
	}

	if len(missing) == 0 {
		return out, nil
	}

	vecs, err := c.next.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missing) {
		return nil, pdfoutline.Errorf(pdfoutline.EINTERNAL, "embedder returned %d vectors for %d texts", len(vecs), len(missing))
	}

	for i, text := range missing {
		if err := c.store(ctx, text, vecs[i]); err != nil {
			return nil, err
		}
		for _, pos := range pending[text] {
			out[pos] = vecs[i]
		}
	}
	return out, nil
}

func (c *EmbeddingCache) key(text string) string {
	return hashString(c.model + "\x00" + text)
}

// lookup returns nil without error when the text is not cached.
func (c *EmbeddingCache) lookup(ctx context.Context, text string) ([]float32, error) {
	var stored string
	var blob []byte
	err := c.db.QueryRowContext(ctx, `
		SELECT text, vector FROM embeddings WHERE key = ? AND model = ?
	`, c.key(text), c.model).Scan(&stored, &blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if stored != text {
		return nil, nil
	}
	return decodeVector(blob)
}

func (c *EmbeddingCache) store(ctx context.Context, text string, vec []float32) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO embeddings (key, model, text, vector, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET text = excluded.text, vector = excluded.vector, created_at = excluded.created_at
	`, c.key(text), c.model, text, encodeVector(vec), time.Now().UTC().Format(time.RFC3339))
	return err
}
