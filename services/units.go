package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/propdiary/propdiary/internal/dbx"
	"github.com/propdiary/propdiary/internal/logging"
	"github.com/propdiary/propdiary/models"
	"github.com/propdiary/propdiary/store"
	"github.com/propdiary/propdiary/store/tenancies"
	"github.com/propdiary/propdiary/store/units"
)

type UnitService struct {
	store *store.Store
	log   logging.Logger
	now   func() time.Time
	props *PropertyService
}

// Create inserts the unit and refreshes the parent property's
// occupancy counters.
func (s *UnitService) Create(ctx context.Context, u models.Unit) (*models.Unit, error) {
	ts := s.now()
	u.ID = uuid.NewString()
	u.IsArchived = false
	u.IsDeleted = false
	u.DeletedAt = nil
	u.CreatedAt = ts
	u.UpdatedAt = ts
	if u.Status == "" {
		u.Status = models.UnitVacant
	}
	if err := s.store.Units.Insert(ctx, &u); err != nil {
		return nil, err
	}
	if err := s.props.RecalculateOccupancy(ctx, u.PropertyID); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UnitService) Update(ctx context.Context, id string, mutate func(*models.Unit)) (*models.Unit, error) {
	u, err := s.store.Units.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("unit %s: %w", id, ErrNotFound)
	}
	mutate(u)
	u.UpdatedAt = s.now()
	if err := s.store.Units.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := s.props.RecalculateOccupancy(ctx, u.PropertyID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UnitService) Archive(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(u *models.Unit) { u.IsArchived = true })
	return err
}

// Restore brings a unit back from the recycle bin, or from the archive
// when it is not deleted.
func (s *UnitService) Restore(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(u *models.Unit) {
		if u.IsDeleted {
			u.IsDeleted = false
			u.DeletedAt = nil
		} else {
			u.IsArchived = false
		}
	})
	return err
}

// SoftDelete moves the unit to the recycle bin. Its tenancies are left
// untouched: soft delete never cascades.
func (s *UnitService) SoftDelete(ctx context.Context, id string) error {
	ts := s.now()
	_, err := s.Update(ctx, id, func(u *models.Unit) {
		u.IsDeleted = true
		u.DeletedAt = &ts
	})
	return err
}

// Delete permanently removes the unit and its tenancies in one
// transaction, then refreshes the property's occupancy counters.
func (s *UnitService) Delete(ctx context.Context, id string) error {
	u, err := s.store.Units.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("unit %s: %w", id, ErrNotFound)
	}
	err = dbx.WithTx(ctx, s.store.DB, func(ctx context.Context, tx dbx.DBTX) error {
		if err := tenancies.NewSQLiteRepository(tx).DeleteByUnit(ctx, id); err != nil {
			return err
		}
		return units.NewSQLiteRepository(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "unit deleted permanently", "unit_id", id)
	return s.props.RecalculateOccupancy(ctx, u.PropertyID)
}
