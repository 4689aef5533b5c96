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

type TenancyService struct {
	store *store.Store
	log   logging.Logger
	now   func() time.Time
	props *PropertyService
}

// Create inserts the tenancy and marks its unit occupied.
func (s *TenancyService) Create(ctx context.Context, t models.Tenancy) (*models.Tenancy, error) {
	ts := s.now()
	t.ID = uuid.NewString()
	t.IsArchived = false
	t.IsDeleted = false
	t.DeletedAt = nil
	t.CreatedAt = ts
	t.UpdatedAt = ts
	if t.Status == "" {
		t.Status = models.TenancyActive
	}
	if err := s.store.Tenancies.Insert(ctx, &t); err != nil {
		return nil, err
	}
	if err := s.setUnitStatus(ctx, t.UnitID, models.UnitOccupied); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TenancyService) Update(ctx context.Context, id string, mutate func(*models.Tenancy)) (*models.Tenancy, error) {
	t, err := s.store.Tenancies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("tenancy %s: %w", id, ErrNotFound)
	}
	mutate(t)
	t.UpdatedAt = s.now()
	if err := s.store.Tenancies.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Archive terminates the tenancy, hides it from the diary and frees
// its unit.
func (s *TenancyService) Archive(ctx context.Context, id string) error {
	t, err := s.Update(ctx, id, func(t *models.Tenancy) {
		t.IsArchived = true
		t.Status = models.TenancyTerminated
	})
	if err != nil {
		return err
	}
	return s.vacateUnlessOccupied(ctx, t.UnitID, id)
}

// Restore brings a tenancy back from the recycle bin, or from the
// archive when it is not deleted, reactivating it and re-occupying
// its unit.
func (s *TenancyService) Restore(ctx context.Context, id string) error {
	t, err := s.Update(ctx, id, func(t *models.Tenancy) {
		if t.IsDeleted {
			t.IsDeleted = false
			t.DeletedAt = nil
		} else {
			t.IsArchived = false
		}
		t.Status = models.TenancyActive
	})
	if err != nil {
		return err
	}
	return s.setUnitStatus(ctx, t.UnitID, models.UnitOccupied)
}

// SoftDelete moves the tenancy to the recycle bin, terminates it and
// frees its unit.
func (s *TenancyService) SoftDelete(ctx context.Context, id string) error {
	ts := s.now()
	t, err := s.Update(ctx, id, func(t *models.Tenancy) {
		t.IsDeleted = true
		t.DeletedAt = &ts
		t.Status = models.TenancyTerminated
	})
	if err != nil {
		return err
	}
	return s.vacateUnlessOccupied(ctx, t.UnitID, id)
}

// Delete permanently removes the tenancy and frees its unit.
func (s *TenancyService) Delete(ctx context.Context, id string) error {
	t, err := s.store.Tenancies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("tenancy %s: %w", id, ErrNotFound)
	}
	if err := s.store.Tenancies.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "tenancy deleted permanently", "tenancy_id", id)
	return s.vacateUnlessOccupied(ctx, t.UnitID, id)
}

// AnnualRentForProperty sums twelve months of rent over the live
// active tenancies of a property's live units.
func (s *TenancyService) AnnualRentForProperty(ctx context.Context, propertyID string) (float64, error) {
	propertyUnits, err := s.store.Units.ListByProperty(ctx, propertyID)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, u := range propertyUnits {
		if !u.Live() {
			continue
		}
		unitTenancies, err := s.store.Tenancies.ListByUnit(ctx, u.ID)
		if err != nil {
			return 0, err
		}
		for _, t := range unitTenancies {
			if t.Live() && t.Status == models.TenancyActive {
				total += t.MonthlyRent * 12
			}
		}
	}
	return total, nil
}

func (s *TenancyService) setUnitStatus(ctx context.Context, unitID string, status models.UnitStatus) error {
	u, err := s.store.Units.GetByID(ctx, unitID)
	if err != nil || u == nil {
		return err
	}
	if u.Status == status {
		return nil
	}
	u.Status = status
	u.UpdatedAt = s.now()
	if err := s.store.Units.Update(ctx, u); err != nil {
		return err
	}
	return s.props.RecalculateOccupancy(ctx, u.PropertyID)
}

// vacateUnlessOccupied marks the unit vacant unless another live
// active tenancy still occupies it.
func (s *TenancyService) vacateUnlessOccupied(ctx context.Context, unitID, excludeTenancyID string) error {
	unitTenancies, err := s.store.Tenancies.ListByUnit(ctx, unitID)
	if err != nil {
		return err
	}
	for _, t := range unitTenancies {
		if t.ID != excludeTenancyID && t.Live() && t.Status == models.TenancyActive {
			return nil
		}
	}
	return s.setUnitStatus(ctx, unitID, models.UnitVacant)
}
