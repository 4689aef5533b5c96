package properties

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/propdiary/propdiary/internal/dbx"
	"github.com/propdiary/propdiary/models"
)

const columns = `id, name, address, property_type, total_units, occupied_units,
	description, purchase_price, current_value, purchase_date, tenure,
	title_number, property_manager, status, is_archived, is_deleted,
	deleted_at, created_at, updated_at`

// SQLiteRepository implements Repository over a dbx.DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Property, error) {
	return r.selectWhere(ctx, `is_deleted = 0`)
}

func (r *SQLiteRepository) ListDeleted(ctx context.Context) ([]models.Property, error) {
	return r.selectWhere(ctx, `is_deleted = 1`)
}

func (r *SQLiteRepository) selectWhere(ctx context.Context, cond string, args ...any) ([]models.Property, error) {
	query := `SELECT ` + columns + ` FROM properties WHERE ` + cond + ` ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select properties: %w", err)
	}
	defer rows.Close()

	var result []models.Property
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM properties WHERE id = ?`, id)
	p, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, p *models.Property) error {
	query := `INSERT INTO properties (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Address, p.PropertyType, p.TotalUnits, p.OccupiedUnits,
		p.Description, p.PurchasePrice, p.CurrentValue, dbx.NullTime(p.PurchaseDate),
		p.Tenure, p.TitleNumber, p.PropertyManager, p.Status, p.IsArchived,
		p.IsDeleted, dbx.NullTime(p.DeletedAt), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *models.Property) error {
	query := `UPDATE properties SET name = ?, address = ?, property_type = ?,
		total_units = ?, occupied_units = ?, description = ?, purchase_price = ?,
		current_value = ?, purchase_date = ?, tenure = ?, title_number = ?,
		property_manager = ?, status = ?, is_archived = ?, is_deleted = ?,
		deleted_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name, p.Address, p.PropertyType, p.TotalUnits, p.OccupiedUnits,
		p.Description, p.PurchasePrice, p.CurrentValue, dbx.NullTime(p.PurchaseDate),
		p.Tenure, p.TitleNumber, p.PropertyManager, p.Status, p.IsArchived,
		p.IsDeleted, dbx.NullTime(p.DeletedAt), p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scan(row rowScanner) (*models.Property, error) {
	var p models.Property
	var purchaseDate, deletedAt sql.NullTime
	err := row.Scan(&p.ID, &p.Name, &p.Address, &p.PropertyType, &p.TotalUnits,
		&p.OccupiedUnits, &p.Description, &p.PurchasePrice, &p.CurrentValue,
		&purchaseDate, &p.Tenure, &p.TitleNumber, &p.PropertyManager, &p.Status,
		&p.IsArchived, &p.IsDeleted, &deletedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.PurchaseDate = dbx.TimePtr(purchaseDate)
	p.DeletedAt = dbx.TimePtr(deletedAt)
	return &p, nil
}
