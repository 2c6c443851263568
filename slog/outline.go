package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pdfoutline"
)

// Ensure LoggingOutlineService implements pdfoutline.OutlineService.
var _ pdfoutline.OutlineService = (*LoggingOutlineService)(nil)

// LoggingOutlineService wraps an OutlineService and logs cache hits and
// stores at debug level, and failed stores at warn level.
type LoggingOutlineService struct {
	next   pdfoutline.OutlineService
	logger *slog.Logger
}

// NewLoggingOutlineService creates a new LoggingOutlineService.
func NewLoggingOutlineService(next pdfoutline.OutlineService, logger *slog.Logger) *LoggingOutlineService {
	return &LoggingOutlineService{next: next, logger: logger}
}

// FindOutlineByHash delegates to the wrapped service and logs hit or miss.
func (s *LoggingOutlineService) FindOutlineByHash(ctx context.Context, hash string) (*pdfoutline.OutlineRecord, error) {
	rec, err := s.next.FindOutlineByHash(ctx, hash)
	s.logger.Debug("outline cache lookup",
		"hash", hash,
		"hit", err == nil,
		"err", ignoreNotFound(err),
	)
	return rec, err
}

// CreateOutline delegates to the wrapped service and logs the store. A
// failed store is logged as a warning unless the outline already exists.
func (s *LoggingOutlineService) CreateOutline(ctx context.Context, rec *pdfoutline.OutlineRecord) error {
	err := s.next.CreateOutline(ctx, rec)
	level := slog.LevelDebug
	if err != nil && pdfoutline.ErrorCode(err) != pdfoutline.ECONFLICT {
		level = slog.LevelWarn
	}
	s.logger.Log(ctx, level, "outline cache store",
		"hash", rec.ContentHash,
		"name", rec.Name,
		"err", err,
	)
	return err
}

// DeleteOutlines delegates to the wrapped service and logs the operation.
func (s *LoggingOutlineService) DeleteOutlines(ctx context.Context) error {
	err := s.next.DeleteOutlines(ctx)
	s.logger.Info("outline cache cleared", "err", err)
	return err
}

func ignoreNotFound(err error) error {
	if pdfoutline.ErrorCode(err) == pdfoutline.ENOTFOUND {
		return nil
	}
	return err
}
