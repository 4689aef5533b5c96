// Package properties persists Property records.
package properties

import (
	"context"

	"github.com/propdiary/propdiary/models"
)

// Repository is the property record store. GetByID returns (nil, nil)
// when no record exists.
type Repository interface {
	List(ctx context.Context) ([]models.Property, error)
	ListDeleted(ctx context.Context) ([]models.Property, error)
	GetByID(ctx context.Context, id string) (*models.Property, error)
	Insert(ctx context.Context, p *models.Property) error
	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id string) error
}
