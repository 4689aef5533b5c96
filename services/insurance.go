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

type InsuranceService struct {
	store *store.Store
	log   logging.Logger
	now   func() time.Time
}

func (s *InsuranceService) Create(ctx context.Context, p models.InsurancePolicy) (*models.InsurancePolicy, error) {
	ts := s.now()
	p.ID = uuid.NewString()
	p.IsArchived = false
	p.IsDeleted = false
	p.DeletedAt = nil
	p.CreatedAt = ts
	p.UpdatedAt = ts
	if err := s.store.Insurance.Insert(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *InsuranceService) Update(ctx context.Context, id string, mutate func(*models.InsurancePolicy)) (*models.InsurancePolicy, error) {
	p, err := s.store.Insurance.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("insurance policy %s: %w", id, ErrNotFound)
	}
	mutate(p)
	p.UpdatedAt = s.now()
	if err := s.store.Insurance.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *InsuranceService) Archive(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(p *models.InsurancePolicy) { p.IsArchived = true })
	return err
}

func (s *InsuranceService) Restore(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(p *models.InsurancePolicy) { p.IsArchived = false })
	return err
}

func (s *InsuranceService) Delete(ctx context.Context, id string) error {
	return s.store.Insurance.Delete(ctx, id)
}
