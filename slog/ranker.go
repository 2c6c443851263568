package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pdfoutline"
)

// Ensure LoggingRanker implements pdfoutline.Ranker.
var _ pdfoutline.Ranker = (*LoggingRanker)(nil)

// LoggingRanker wraps a Ranker with logging.
type LoggingRanker struct {
	next   pdfoutline.Ranker
	logger *slog.Logger
}

// NewLoggingRanker creates a new LoggingRanker.
func NewLoggingRanker(next pdfoutline.Ranker, logger *slog.Logger) *LoggingRanker {
	return &LoggingRanker{next: next, logger: logger}
}

// Rank delegates to the wrapped ranker and logs the operation.
func (r *LoggingRanker) Rank(ctx context.Context, docs []pdfoutline.NamedResult, query string) (sections []pdfoutline.RankedSection, err error) {
	defer func(begin time.Time) {
		r.logger.Info("rank sections",
			"documents", len(docs),
			"query", query,
			"sections", len(sections),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Rank(ctx, docs, query)
}
