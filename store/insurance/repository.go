// Package insurance persists InsurancePolicy records.
package insurance

import (
	"context"

	"github.com/propdiary/propdiary/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.InsurancePolicy, error)
	GetByID(ctx context.Context, id string) (*models.InsurancePolicy, error)
	Insert(ctx context.Context, p *models.InsurancePolicy) error
	Update(ctx context.Context, p *models.InsurancePolicy) error
	Delete(ctx context.Context, id string) error
}
