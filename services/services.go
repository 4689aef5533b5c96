// Package services implements the record mutation semantics on top of
// the store: id assignment, timestamp stamping, archive and recycle-bin
// transitions, unit status upkeep, occupancy counters and cascading
// hard deletes.
package services

import (
	"errors"
	"time"

	"github.com/propdiary/propdiary/internal/logging"
	"github.com/propdiary/propdiary/store"
)

// ErrNotFound is returned by mutations addressed at a missing record.
var ErrNotFound = errors.New("not found")

// Services bundles the per-collection services over one store.
type Services struct {
	Properties  *PropertyService
	Units       *UnitService
	Tenancies   *TenancyService
	Maintenance *MaintenanceService
	Insurance   *InsuranceService
	EPCs        *EPCService
}

func New(st *store.Store, log logging.Logger) *Services {
	now := time.Now
	props := &PropertyService{store: st, log: log, now: now}
	units := &UnitService{store: st, log: log, now: now, props: props}
	tens := &TenancyService{store: st, log: log, now: now, props: props}
	return &Services{
		Properties:  props,
		Units:       units,
		Tenancies:   tens,
		Maintenance: &MaintenanceService{store: st, log: log, now: now},
		Insurance:   &InsuranceService{store: st, log: log, now: now},
		EPCs:        &EPCService{store: st, log: log, now: now},
	}
}

// WithClock replaces the time source of every service. Test hook.
func (s *Services) WithClock(now func() time.Time) *Services {
	s.Properties.now = now
	s.Units.now = now
	s.Tenancies.now = now
	s.Maintenance.now = now
	s.Insurance.now = now
	s.EPCs.now = now
	return s
}
