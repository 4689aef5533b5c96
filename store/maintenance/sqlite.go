package maintenance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/propdiary/propdiary/internal/dbx"
	"github.com/propdiary/propdiary/models"
)

const columns = `id, property_id, unit_id, title, description, status, priority,
	reported_date, deadline, completed_date, assigned_to, estimated_cost,
	actual_cost, diary_settings, is_archived, is_deleted, deleted_at,
	created_at, updated_at`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.MaintenanceIssue, error) {
	return r.selectWhere(ctx, `is_deleted = 0`)
}

func (r *SQLiteRepository) ListByProperty(ctx context.Context, propertyID string) ([]models.MaintenanceIssue, error) {
	return r.selectWhere(ctx, `property_id = ? AND is_deleted = 0`, propertyID)
}

func (r *SQLiteRepository) selectWhere(ctx context.Context, cond string, args ...any) ([]models.MaintenanceIssue, error) {
	query := `SELECT ` + columns + ` FROM maintenance_issues WHERE ` + cond + ` ORDER BY reported_date`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select maintenance issues: %w", err)
	}
	defer rows.Close()

	var result []models.MaintenanceIssue
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.MaintenanceIssue, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM maintenance_issues WHERE id = ?`, id)
	m, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance issue: %w", err)
	}
	return m, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, m *models.MaintenanceIssue) error {
	query := `INSERT INTO maintenance_issues (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.PropertyID, m.UnitID, m.Title, m.Description, m.Status,
		m.Priority, m.ReportedDate, dbx.NullTime(m.Deadline),
		dbx.NullTime(m.CompletedDate), m.AssignedTo, m.EstimatedCost,
		m.ActualCost, m.DiarySettings, m.IsArchived, m.IsDeleted,
		dbx.NullTime(m.DeletedAt), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert maintenance issue: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, m *models.MaintenanceIssue) error {
	query := `UPDATE maintenance_issues SET property_id = ?, unit_id = ?, title = ?,
		description = ?, status = ?, priority = ?, reported_date = ?,
		deadline = ?, completed_date = ?, assigned_to = ?, estimated_cost = ?,
		actual_cost = ?, diary_settings = ?, is_archived = ?, is_deleted = ?,
		deleted_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		m.PropertyID, m.UnitID, m.Title, m.Description, m.Status, m.Priority,
		m.ReportedDate, dbx.NullTime(m.Deadline), dbx.NullTime(m.CompletedDate),
		m.AssignedTo, m.EstimatedCost, m.ActualCost, m.DiarySettings,
		m.IsArchived, m.IsDeleted, dbx.NullTime(m.DeletedAt), m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update maintenance issue: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM maintenance_issues WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete maintenance issue: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scan(row rowScanner) (*models.MaintenanceIssue, error) {
	var m models.MaintenanceIssue
	var deadline, completed, deletedAt sql.NullTime
	err := row.Scan(&m.ID, &m.PropertyID, &m.UnitID, &m.Title, &m.Description,
		&m.Status, &m.Priority, &m.ReportedDate, &deadline, &completed,
		&m.AssignedTo, &m.EstimatedCost, &m.ActualCost, &m.DiarySettings,
		&m.IsArchived, &m.IsDeleted, &deletedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.Deadline = dbx.TimePtr(deadline)
	m.CompletedDate = dbx.TimePtr(completed)
	m.DeletedAt = dbx.TimePtr(deletedAt)
	return &m, nil
}
