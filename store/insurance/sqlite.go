package insurance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/propdiary/propdiary/internal/dbx"
	"github.com/propdiary/propdiary/models"
)

const columns = `id, property_ids, policy_type, insurance_company, broker_name,
	policy_number, start_date, expiry_date, annual_premium, sum_insured,
	comments, diary_settings, is_archived, is_deleted, deleted_at,
	created_at, updated_at`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.InsurancePolicy, error) {
	query := `SELECT ` + columns + ` FROM insurance_policies WHERE is_deleted = 0 ORDER BY expiry_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select insurance policies: %w", err)
	}
	defer rows.Close()

	var result []models.InsurancePolicy
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

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.InsurancePolicy, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM insurance_policies WHERE id = ?`, id)
	p, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insurance policy: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, p *models.InsurancePolicy) error {
	query := `INSERT INTO insurance_policies (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.PropertyIDs, p.PolicyType, p.InsuranceCompany, p.BrokerName,
		p.PolicyNumber, p.StartDate, p.ExpiryDate, p.AnnualPremium,
		p.SumInsured, p.Comments, p.DiarySettings, p.IsArchived, p.IsDeleted,
		dbx.NullTime(p.DeletedAt), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert insurance policy: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *models.InsurancePolicy) error {
	query := `UPDATE insurance_policies SET property_ids = ?, policy_type = ?,
		insurance_company = ?, broker_name = ?, policy_number = ?,
		start_date = ?, expiry_date = ?, annual_premium = ?, sum_insured = ?,
		comments = ?, diary_settings = ?, is_archived = ?, is_deleted = ?,
		deleted_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.PropertyIDs, p.PolicyType, p.InsuranceCompany, p.BrokerName,
		p.PolicyNumber, p.StartDate, p.ExpiryDate, p.AnnualPremium,
		p.SumInsured, p.Comments, p.DiarySettings, p.IsArchived, p.IsDeleted,
		dbx.NullTime(p.DeletedAt), p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update insurance policy: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM insurance_policies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete insurance policy: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scan(row rowScanner) (*models.InsurancePolicy, error) {
	var p models.InsurancePolicy
	var deletedAt sql.NullTime
	err := row.Scan(&p.ID, &p.PropertyIDs, &p.PolicyType, &p.InsuranceCompany,
		&p.BrokerName, &p.PolicyNumber, &p.StartDate, &p.ExpiryDate,
		&p.AnnualPremium, &p.SumInsured, &p.Comments, &p.DiarySettings,
		&p.IsArchived, &p.IsDeleted, &deletedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.DeletedAt = dbx.TimePtr(deletedAt)
	return &p, nil
}
