// Package units persists Unit records.
package units

import (
	"context"

	"github.com/propdiary/propdiary/models"
)

// Repository is the unit record store. GetByID returns (nil, nil) when
// no record exists.
type Repository interface {
	List(ctx context.Context) ([]models.Unit, error)
	ListDeleted(ctx context.Context) ([]models.Unit, error)
	ListByProperty(ctx context.Context, propertyID string) ([]models.Unit, error)
	GetByID(ctx context.Context, id string) (*models.Unit, error)
	Insert(ctx context.Context, u *models.Unit) error
	Update(ctx context.Context, u *models.Unit) error
	Delete(ctx context.Context, id string) error
	DeleteByProperty(ctx context.Context, propertyID string) error
}
