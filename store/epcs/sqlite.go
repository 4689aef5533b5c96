package epcs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/propdiary/propdiary/internal/dbx"
	"github.com/propdiary/propdiary/models"
)

const columns = `id, unit_id, rating, certificate_url, valid_until, notes,
	is_archived, is_deleted, deleted_at, created_at, updated_at`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.EPCRecord, error) {
	query := `SELECT ` + columns + ` FROM epc_records WHERE is_deleted = 0 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select epc records: %w", err)
	}
	defer rows.Close()

	var result []models.EPCRecord
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByUnit returns the live certificate of a unit, or (nil, nil) when
// the unit has none.
func (r *SQLiteRepository) GetByUnit(ctx context.Context, unitID string) (*models.EPCRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM epc_records WHERE unit_id = ? AND is_archived = 0 AND is_deleted = 0 LIMIT 1`,
		unitID)
	e, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get epc record for unit: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.EPCRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM epc_records WHERE id = ?`, id)
	e, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get epc record: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.EPCRecord) error {
	query := `INSERT INTO epc_records (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UnitID, e.Rating, e.CertificateURL, dbx.NullTime(e.ValidUntil),
		e.Notes, e.IsArchived, e.IsDeleted, dbx.NullTime(e.DeletedAt),
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert epc record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e *models.EPCRecord) error {
	query := `UPDATE epc_records SET unit_id = ?, rating = ?, certificate_url = ?,
		valid_until = ?, notes = ?, is_archived = ?, is_deleted = ?,
		deleted_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		e.UnitID, e.Rating, e.CertificateURL, dbx.NullTime(e.ValidUntil),
		e.Notes, e.IsArchived, e.IsDeleted, dbx.NullTime(e.DeletedAt),
		e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("failed to update epc record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM epc_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete epc record: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scan(row rowScanner) (*models.EPCRecord, error) {
	var e models.EPCRecord
	var validUntil, deletedAt sql.NullTime
	err := row.Scan(&e.ID, &e.UnitID, &e.Rating, &e.CertificateURL, &validUntil,
		&e.Notes, &e.IsArchived, &e.IsDeleted, &deletedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.ValidUntil = dbx.TimePtr(validUntil)
	e.DeletedAt = dbx.TimePtr(deletedAt)
	return &e, nil
}
