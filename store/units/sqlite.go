package units

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/propdiary/propdiary/internal/dbx"
	"github.com/propdiary/propdiary/models"
)

const columns = `id, property_id, unit_number, floor_number, unit_type, size_sqft,
	rent_amount, epc_rating, description, status, is_archived, is_deleted,
	deleted_at, created_at, updated_at`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Unit, error) {
	return r.selectWhere(ctx, `is_deleted = 0`)
}

func (r *SQLiteRepository) ListDeleted(ctx context.Context) ([]models.Unit, error) {
	return r.selectWhere(ctx, `is_deleted = 1`)
}

func (r *SQLiteRepository) ListByProperty(ctx context.Context, propertyID string) ([]models.Unit, error) {
	return r.selectWhere(ctx, `property_id = ? AND is_deleted = 0`, propertyID)
}

func (r *SQLiteRepository) selectWhere(ctx context.Context, cond string, args ...any) ([]models.Unit, error) {
	query := `SELECT ` + columns + ` FROM units WHERE ` + cond + ` ORDER BY unit_number`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select units: %w", err)
	}
	defer rows.Close()

	var result []models.Unit
	for rows.Next() {
		u, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Unit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM units WHERE id = ?`, id)
	u, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, u *models.Unit) error {
	query := `INSERT INTO units (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.PropertyID, u.UnitNumber, u.FloorNumber, u.UnitType, u.SizeSqft,
		u.RentAmount, u.EPCRating, u.Description, u.Status, u.IsArchived,
		u.IsDeleted, dbx.NullTime(u.DeletedAt), u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert unit: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, u *models.Unit) error {
	query := `UPDATE units SET property_id = ?, unit_number = ?, floor_number = ?,
		unit_type = ?, size_sqft = ?, rent_amount = ?, epc_rating = ?,
		description = ?, status = ?, is_archived = ?, is_deleted = ?,
		deleted_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		u.PropertyID, u.UnitNumber, u.FloorNumber, u.UnitType, u.SizeSqft,
		u.RentAmount, u.EPCRating, u.Description, u.Status, u.IsArchived,
		u.IsDeleted, dbx.NullTime(u.DeletedAt), u.UpdatedAt, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	return nil
}

// DeleteByProperty removes every unit of a property, tombstoned or not.
func (r *SQLiteRepository) DeleteByProperty(ctx context.Context, propertyID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM units WHERE property_id = ?`, propertyID)
	if err != nil {
		return fmt.Errorf("failed to delete units for property: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scan(row rowScanner) (*models.Unit, error) {
	var u models.Unit
	var deletedAt sql.NullTime
	err := row.Scan(&u.ID, &u.PropertyID, &u.UnitNumber, &u.FloorNumber,
		&u.UnitType, &u.SizeSqft, &u.RentAmount, &u.EPCRating, &u.Description,
		&u.Status, &u.IsArchived, &u.IsDeleted, &deletedAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.DeletedAt = dbx.TimePtr(deletedAt)
	return &u, nil
}
