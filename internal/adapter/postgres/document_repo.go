package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"weightlog/internal/codec"
	"weightlog/internal/domain"
)

var _ domain.DocumentRepository = (*DB)(nil)

// Load reads the single stored document, or an empty one if none is stored.
func (d *DB) Load(ctx context.Context) (*domain.Document, error) {
	var body []byte
	err := d.sql.QueryRowContext(ctx, "SELECT body FROM documents WHERE id = 1;").Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	doc, err := codec.DecodeDocument(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse data: %w", err)
	}
	return doc, nil
}

// Save replaces the stored document in full.
func (d *DB) Save(ctx context.Context, doc *domain.Document) error {
	body, err := codec.EncodeDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize data: %w", err)
	}
	_, err = d.sql.ExecContext(ctx,
		"INSERT INTO documents (id, body, updated_at) VALUES (1, $1, $2) ON CONFLICT (id) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at;",
		string(body), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	return nil
}
