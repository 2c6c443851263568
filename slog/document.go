// Package slog provides log/slog decorators for pdfoutline services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pdfoutline"
)

// Ensure LoggingDocumentReader implements pdfoutline.DocumentReader.
var _ pdfoutline.DocumentReader = (*LoggingDocumentReader)(nil)

// LoggingDocumentReader wraps a DocumentReader with logging.
type LoggingDocumentReader struct {
	next   pdfoutline.DocumentReader
	logger *slog.Logger
}

// NewLoggingDocumentReader creates a new LoggingDocumentReader.
func NewLoggingDocumentReader(next pdfoutline.DocumentReader, logger *slog.Logger) *LoggingDocumentReader {
	return &LoggingDocumentReader{next: next, logger: logger}
}

// ReadDocument delegates to the wrapped reader and logs the operation.
func (r *LoggingDocumentReader) ReadDocument(ctx context.Context, data []byte) (doc *pdfoutline.Document, err error) {
	defer func(begin time.Time) {
		var pages, toc int
		if doc != nil {
			pages, toc = len(doc.Pages), len(doc.TOC)
		}
		r.logger.Debug("read document",
			"bytes", len(data),
			"pages", pages,
			"toc", toc,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadDocument(ctx, data)
}
