package tenancies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/propdiary/propdiary/internal/dbx"
	"github.com/propdiary/propdiary/models"
)

const columns = `id, unit_id, tenant_name, tenant_email, tenant_phone,
	lease_start_date, lease_end_date, monthly_rent, security_deposit,
	break_date, break_type, rent_review_date, rent_review_type, notes,
	diary_settings, status, is_archived, is_deleted, deleted_at,
	created_at, updated_at`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Tenancy, error) {
	return r.selectWhere(ctx, `is_deleted = 0`)
}

func (r *SQLiteRepository) ListDeleted(ctx context.Context) ([]models.Tenancy, error) {
	return r.selectWhere(ctx, `is_deleted = 1`)
}

func (r *SQLiteRepository) ListByUnit(ctx context.Context, unitID string) ([]models.Tenancy, error) {
	return r.selectWhere(ctx, `unit_id = ? AND is_deleted = 0`, unitID)
}

func (r *SQLiteRepository) selectWhere(ctx context.Context, cond string, args ...any) ([]models.Tenancy, error) {
	query := `SELECT ` + columns + ` FROM tenancies WHERE ` + cond + ` ORDER BY lease_end_date`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tenancies: %w", err)
	}
	defer rows.Close()

	var result []models.Tenancy
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Tenancy, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM tenancies WHERE id = ?`, id)
	t, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenancy: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, t *models.Tenancy) error {
	query := `INSERT INTO tenancies (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UnitID, t.TenantName, t.TenantEmail, t.TenantPhone,
		t.LeaseStartDate, t.LeaseEndDate, t.MonthlyRent, t.SecurityDeposit,
		dbx.NullTime(t.BreakDate), t.BreakType, dbx.NullTime(t.RentReviewDate),
		t.RentReviewType, t.Notes, t.DiarySettings, t.Status, t.IsArchived,
		t.IsDeleted, dbx.NullTime(t.DeletedAt), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert tenancy: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, t *models.Tenancy) error {
	query := `UPDATE tenancies SET unit_id = ?, tenant_name = ?, tenant_email = ?,
		tenant_phone = ?, lease_start_date = ?, lease_end_date = ?,
		monthly_rent = ?, security_deposit = ?, break_date = ?, break_type = ?,
		rent_review_date = ?, rent_review_type = ?, notes = ?,
		diary_settings = ?, status = ?, is_archived = ?, is_deleted = ?,
		deleted_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		t.UnitID, t.TenantName, t.TenantEmail, t.TenantPhone,
		t.LeaseStartDate, t.LeaseEndDate, t.MonthlyRent, t.SecurityDeposit,
		dbx.NullTime(t.BreakDate), t.BreakType, dbx.NullTime(t.RentReviewDate),
		t.RentReviewType, t.Notes, t.DiarySettings, t.Status, t.IsArchived,
		t.IsDeleted, dbx.NullTime(t.DeletedAt), t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update tenancy: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tenancies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tenancy: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUnit(ctx context.Context, unitID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tenancies WHERE unit_id = ?`, unitID)
	if err != nil {
		return fmt.Errorf("failed to delete tenancies for unit: %w", err)
	}
	return nil
}

// DeleteByPropertyUnits removes the tenancies of every unit under a
// property, tombstoned units included.
func (r *SQLiteRepository) DeleteByPropertyUnits(ctx context.Context, propertyID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tenancies WHERE unit_id IN
		(SELECT id FROM units WHERE property_id = ?)`, propertyID)
	if err != nil {
		return fmt.Errorf("failed to delete tenancies for property: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scan(row rowScanner) (*models.Tenancy, error) {
	var t models.Tenancy
	var breakDate, rentReviewDate, deletedAt sql.NullTime
	err := row.Scan(&t.ID, &t.UnitID, &t.TenantName, &t.TenantEmail,
		&t.TenantPhone, &t.LeaseStartDate, &t.LeaseEndDate, &t.MonthlyRent,
		&t.SecurityDeposit, &breakDate, &t.BreakType, &rentReviewDate,
		&t.RentReviewType, &t.Notes, &t.DiarySettings, &t.Status,
		&t.IsArchived, &t.IsDeleted, &deletedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.BreakDate = dbx.TimePtr(breakDate)
	t.RentReviewDate = dbx.TimePtr(rentReviewDate)
	t.DeletedAt = dbx.TimePtr(deletedAt)
	return &t, nil
}
