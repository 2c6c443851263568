// Package rank orders outline sections by semantic relevance to a query.
package rank

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/pdfoutline"
)

// Compile-time interface verification.
var _ pdfoutline.Ranker = (*Ranker)(nil)

// Ranker implements pdfoutline.Ranker by embedding every candidate section
// together with the query and scoring them by cosine similarity.
type Ranker struct {
	embedder pdfoutline.Embedder
	limit    int
}

// NewRanker creates a Ranker returning at most limit sections.
// A non-positive limit means pdfoutline.DefaultRankLimit.
func NewRanker(embedder pdfoutline.Embedder, limit int) *Ranker {
	if limit <= 0 {
		limit = pdfoutline.DefaultRankLimit
	}
	return &Ranker{embedder: embedder, limit: limit}
}

// Rank returns the top sections, best first. The query is embedded last,
// in the same call as the candidates.
func (r *Ranker) Rank(ctx context.Context, docs []pdfoutline.NamedResult, query string) ([]pdfoutline.RankedSection, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pdfoutline.Errorf(pdfoutline.EINVALID, "query required")
	}

	candidates := Candidates(docs)
	if len(candidates) == 0 {
		return []pdfoutline.RankedSection{}, nil
	}

	texts := make([]string, 0, len(candidates)+1)
	for _, c := range candidates {
		texts = append(texts, c.Text)
	}
	texts = append(texts, query)

	vectors, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed sections: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, pdfoutline.Errorf(pdfoutline.EINTERNAL, "embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	q := vectors[len(vectors)-1]
	scores := make([]float64, len(candidates))
	for i := range candidates {
		scores[i] = CosineSimilarity(q, vectors[i])
	}

	top := TopK(scores, r.limit)
	sections := make([]pdfoutline.RankedSection, len(top))
	for rank, i := range top {
		c := candidates[i]
		sections[rank] = pdfoutline.RankedSection{
			Document:       c.Document,
			PageNumber:     c.Page,
			SectionTitle:   c.Title,
			ImportanceRank: rank + 1,
		}
	}
	return sections, nil
}
