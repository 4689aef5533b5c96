package overlay

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/propdiary/propdiary/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %q: %w", name, err)
	}
	return body, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, name string, body []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (name, body) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body
	`, name, body)
	if err != nil {
		return fmt.Errorf("failed to put document %q: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete document %q: %w", name, err)
	}
	return nil
}
