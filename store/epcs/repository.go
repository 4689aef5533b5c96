// Package epcs persists EPCRecord rows.
package epcs

import (
	"context"

	"github.com/propdiary/propdiary/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.EPCRecord, error)
	GetByUnit(ctx context.Context, unitID string) (*models.EPCRecord, error)
	GetByID(ctx context.Context, id string) (*models.EPCRecord, error)
	Insert(ctx context.Context, e *models.EPCRecord) error
	Update(ctx context.Context, e *models.EPCRecord) error
	Delete(ctx context.Context, id string) error
}
