package mock

import (
	"context"

	"github.com/fwojciec/pdfoutline"
)

var _ pdfoutline.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of pdfoutline.Embedder.
type Embedder struct {
	EmbedFn func(ctx context.Context, texts []string) ([][]float32, error)
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.EmbedFn(ctx, texts)
}

var _ pdfoutline.Ranker = (*Ranker)(nil)

// Ranker is a mock implementation of pdfoutline.Ranker.
type Ranker struct {
	RankFn func(ctx context.Context, docs []pdfoutline.NamedResult, query string) ([]pdfoutline.RankedSection, error)
}

func (r *Ranker) Rank(ctx context.Context, docs []pdfoutline.NamedResult, query string) ([]pdfoutline.RankedSection, error) {
	return r.RankFn(ctx, docs, query)
}
