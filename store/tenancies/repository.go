// Package tenancies persists Tenancy records, including their embedded
// diary reminder settings.
package tenancies

import (
	"context"

	"github.com/propdiary/propdiary/models"
)

// Repository is the tenancy record store. GetByID returns (nil, nil)
// when no record exists.
type Repository interface {
	List(ctx context.Context) ([]models.Tenancy, error)
	ListDeleted(ctx context.Context) ([]models.Tenancy, error)
	ListByUnit(ctx context.Context, unitID string) ([]models.Tenancy, error)
	GetByID(ctx context.Context, id string) (*models.Tenancy, error)
	Insert(ctx context.Context, t *models.Tenancy) error
	Update(ctx context.Context, t *models.Tenancy) error
	Delete(ctx context.Context, id string) error
	DeleteByUnit(ctx context.Context, unitID string) error
	DeleteByPropertyUnits(ctx context.Context, propertyID string) error
}
