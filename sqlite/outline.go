package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/pdfoutline"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pdfoutline.OutlineService = (*OutlineService)(nil)

// OutlineService implements pdfoutline.OutlineService using SQLite.
type OutlineService struct {
	db *DB
}

// NewOutlineService creates a new OutlineService.
func NewOutlineService(db *DB) *OutlineService {
	return &OutlineService{db: db}
}

// CreateOutline stores rec, assigning its ID and creation time.
func (s *OutlineService) CreateOutline(ctx context.Context, rec *pdfoutline.OutlineRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	result, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to encode outline: %w", err)
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO outlines (id, name, content_hash, result, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(content_hash) DO NOTHING
	`, id, rec.Name, rec.ContentHash, string(result), createdAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pdfoutline.Errorf(pdfoutline.ECONFLICT, "outline for content %s already exists", rec.ContentHash)
	}

	rec.ID = id
	rec.CreatedAt = createdAt
	return nil
}

// FindOutlineByHash retrieves the outline stored for a content hash.
func (s *OutlineService) FindOutlineByHash(ctx context.Context, hash string) (*pdfoutline.OutlineRecord, error) {
	var rec pdfoutline.OutlineRecord
	var result, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, content_hash, result, created_at
		FROM outlines
		WHERE content_hash = ?
	`, hash).Scan(&rec.ID, &rec.Name, &rec.ContentHash, &result, &createdAt)

	if err == sql.ErrNoRows {
		return nil, pdfoutline.Errorf(pdfoutline.ENOTFOUND, "outline not found")
	}
	if err != nil {
		return nil, err
	}

	rec.Result = &pdfoutline.DocumentResult{}
	if err := json.Unmarshal([]byte(result), rec.Result); err != nil {
		return nil, fmt.Errorf("failed to decode outline: %w", err)
	}
	if rec.Result.Outline == nil {
		rec.Result.Outline = pdfoutline.Outline{}
	}

	if rec.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &rec, nil
}

// DeleteOutlines removes every stored outline.
func (s *OutlineService) DeleteOutlines(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM outlines`)
	return err
}
