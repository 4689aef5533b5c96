package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propdiary/propdiary/internal/logging"
	"github.com/propdiary/propdiary/models"
	"github.com/propdiary/propdiary/store"
)

type EPCService struct {
	store *store.Store
	log   logging.Logger
	now   func() time.Time
}

// Create inserts the certificate and copies its rating onto the unit.
func (s *EPCService) Create(ctx context.Context, e models.EPCRecord) (*models.EPCRecord, error) {
	ts := s.now()
	e.ID = uuid.NewString()
	e.IsArchived = false
	e.IsDeleted = false
	e.DeletedAt = nil
	e.CreatedAt = ts
	e.UpdatedAt = ts
	if err := s.store.EPCs.Insert(ctx, &e); err != nil {
		return nil, err
	}
	if err := s.syncUnitRating(ctx, e.UnitID, e.Rating); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EPCService) Update(ctx context.Context, id string, mutate func(*models.EPCRecord)) (*models.EPCRecord, error) {
	e, err := s.store.EPCs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("epc record %s: %w", id, ErrNotFound)
	}
	mutate(e)
	e.UpdatedAt = s.now()
	if err := s.store.EPCs.Update(ctx, e); err != nil {
		return nil, err
	}
	if err := s.syncUnitRating(ctx, e.UnitID, e.Rating); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EPCService) Archive(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(e *models.EPCRecord) { e.IsArchived = true })
	return err
}

func (s *EPCService) Restore(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(e *models.EPCRecord) { e.IsArchived = false })
	return err
}

func (s *EPCService) Delete(ctx context.Context, id string) error {
	return s.store.EPCs.Delete(ctx, id)
}

func (s *EPCService) syncUnitRating(ctx context.Context, unitID, rating string) error {
	u, err := s.store.Units.GetByID(ctx, unitID)
	if err != nil || u == nil {
		return err
	}
	if u.EPCRating == rating {
		return nil
	}
	u.EPCRating = rating
	u.UpdatedAt = s.now()
	return s.store.Units.Update(ctx, u)
}
