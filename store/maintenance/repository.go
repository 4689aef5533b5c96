// Package maintenance persists MaintenanceIssue records.
package maintenance

import (
	"context"

	"github.com/propdiary/propdiary/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.MaintenanceIssue, error)
	ListByProperty(ctx context.Context, propertyID string) ([]models.MaintenanceIssue, error)
	GetByID(ctx context.Context, id string) (*models.MaintenanceIssue, error)
	Insert(ctx context.Context, m *models.MaintenanceIssue) error
	Update(ctx context.Context, m *models.MaintenanceIssue) error
	Delete(ctx context.Context, id string) error
}
