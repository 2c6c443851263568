package mock

import (
	"context"

	"github.com/fwojciec/pdfoutline"
)

var _ pdfoutline.Outliner = (*Outliner)(nil)

// Outliner is a mock implementation of pdfoutline.Outliner.
type Outliner struct {
	BuildFn func(doc *pdfoutline.Document) *pdfoutline.DocumentResult
}

func (o *Outliner) Build(doc *pdfoutline.Document) *pdfoutline.DocumentResult {
	return o.BuildFn(doc)
}

var _ pdfoutline.OutlineService = (*OutlineService)(nil)

// OutlineService is a mock implementation of pdfoutline.OutlineService.
type OutlineService struct {
	FindOutlineByHashFn func(ctx context.Context, hash string) (*pdfoutline.OutlineRecord, error)
	CreateOutlineFn     func(ctx context.Context, rec *pdfoutline.OutlineRecord) error
	DeleteOutlinesFn    func(ctx context.Context) error
}

func (s *OutlineService) FindOutlineByHash(ctx context.Context, hash string) (*pdfoutline.OutlineRecord, error) {
	return s.FindOutlineByHashFn(ctx, hash)
}

func (s *OutlineService) CreateOutline(ctx context.Context, rec *pdfoutline.OutlineRecord) error {
	return s.CreateOutlineFn(ctx, rec)
}

func (s *OutlineService) DeleteOutlines(ctx context.Context) error {
	return s.DeleteOutlinesFn(ctx)
}
