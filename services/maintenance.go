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

type MaintenanceService struct {
	store *store.Store
	log   logging.Logger
	now   func() time.Time
}

func (s *MaintenanceService) Create(ctx context.Context, m models.MaintenanceIssue) (*models.MaintenanceIssue, error) {
	ts := s.now()
	m.ID = uuid.NewString()
	m.IsArchived = false
	m.IsDeleted = false
	m.DeletedAt = nil
	m.CreatedAt = ts
	m.UpdatedAt = ts
	if m.Status == "" {
		m.Status = models.MaintenanceReported
	}
	if m.ReportedDate.IsZero() {
		m.ReportedDate = ts
	}
	if err := s.store.Maintenance.Insert(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MaintenanceService) Update(ctx context.Context, id string, mutate func(*models.MaintenanceIssue)) (*models.MaintenanceIssue, error) {
	m, err := s.store.Maintenance.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("maintenance issue %s: %w", id, ErrNotFound)
	}
	mutate(m)
	m.UpdatedAt = s.now()
	if err := s.store.Maintenance.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Complete marks the issue done and records the completion date and
// final cost.
func (s *MaintenanceService) Complete(ctx context.Context, id string, actualCost float64) error {
	ts := s.now()
	_, err := s.Update(ctx, id, func(m *models.MaintenanceIssue) {
		m.Status = models.MaintenanceCompleted
		m.CompletedDate = &ts
		m.ActualCost = actualCost
	})
	return err
}

func (s *MaintenanceService) Archive(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(m *models.MaintenanceIssue) { m.IsArchived = true })
	return err
}

func (s *MaintenanceService) Restore(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(m *models.MaintenanceIssue) { m.IsArchived = false })
	return err
}

func (s *MaintenanceService) Delete(ctx context.Context, id string) error {
	return s.store.Maintenance.Delete(ctx, id)
}
