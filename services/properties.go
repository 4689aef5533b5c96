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
	"github.com/propdiary/propdiary/store/properties"
	"github.com/propdiary/propdiary/store/tenancies"
	"github.com/propdiary/propdiary/store/units"
)

type PropertyService struct {
	store *store.Store
	log   logging.Logger
	now   func() time.Time
}

// Create assigns an id and timestamps and inserts the property.
func (s *PropertyService) Create(ctx context.Context, p models.Property) (*models.Property, error) {
	ts := s.now()
	p.ID = uuid.NewString()
	p.IsArchived = false
	p.IsDeleted = false
	p.DeletedAt = nil
	p.CreatedAt = ts
	p.UpdatedAt = ts
	if p.Status == "" {
		p.Status = models.PropertyActive
	}
	if err := s.store.Properties.Insert(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies mutate to the stored record and stamps UpdatedAt.
func (s *PropertyService) Update(ctx context.Context, id string, mutate func(*models.Property)) (*models.Property, error) {
	p, err := s.store.Properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("property %s: %w", id, ErrNotFound)
	}
	mutate(p)
	p.UpdatedAt = s.now()
	if err := s.store.Properties.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PropertyService) Archive(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(p *models.Property) { p.IsArchived = true })
	return err
}

// Restore brings a property back from the recycle bin, or from the
// archive when it is not deleted.
func (s *PropertyService) Restore(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(p *models.Property) {
		if p.IsDeleted {
			p.IsDeleted = false
			p.DeletedAt = nil
		} else {
			p.IsArchived = false
		}
	})
	return err
}

// SoftDelete moves the property to the recycle bin. Units and
// tenancies are unaffected: soft delete never cascades.
func (s *PropertyService) SoftDelete(ctx context.Context, id string) error {
	ts := s.now()
	_, err := s.Update(ctx, id, func(p *models.Property) {
		p.IsDeleted = true
		p.DeletedAt = &ts
	})
	return err
}

// Delete permanently removes the property, its units and their
// tenancies in one transaction.
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	err := dbx.WithTx(ctx, s.store.DB, func(ctx context.Context, tx dbx.DBTX) error {
		if err := tenancies.NewSQLiteRepository(tx).DeleteByPropertyUnits(ctx, id); err != nil {
			return err
		}
		if err := units.NewSQLiteRepository(tx).DeleteByProperty(ctx, id); err != nil {
			return err
		}
		return properties.NewSQLiteRepository(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "property deleted permanently", "property_id", id)
	return nil
}

// RecalculateOccupancy refreshes the unit counters of a property from
// its live units.
func (s *PropertyService) RecalculateOccupancy(ctx context.Context, propertyID string) error {
	propertyUnits, err := s.store.Units.ListByProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	total, occupied := 0, 0
	for _, u := range propertyUnits {
		if !u.Live() {
			continue
		}
		total++
		if u.Status == models.UnitOccupied {
			occupied++
		}
	}
	_, err = s.Update(ctx, propertyID, func(p *models.Property) {
		p.TotalUnits = total
		p.OccupiedUnits = occupied
	})
	return err
}
