package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pdfoutline"
)

// Ensure LoggingEmbedder implements pdfoutline.Embedder.
var _ pdfoutline.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with logging.
type LoggingEmbedder struct {
	next   pdfoutline.Embedder
	logger *slog.Logger
	name   string
}

// NewLoggingEmbedder creates a new LoggingEmbedder. name identifies the
// embedder in log lines.
func NewLoggingEmbedder(next pdfoutline.Embedder, name string, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger, name: name}
}

// Embed delegates to the wrapped embedder and logs the operation.
func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) (vecs [][]float32, err error) {
	defer func(begin time.Time) {
		dims := 0
		if len(vecs) > 0 {
			dims = len(vecs[0])
		}
		e.logger.Info("embed",
			"embedder", e.name,
			"texts", len(texts),
			"dims", dims,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, texts)
}
