// Package retention implements the recycle bin: soft-deleted property,
// unit and tenancy records are held for a grace period and permanently
// purged once it lapses.
package retention

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/propdiary/propdiary/internal/logging"
	"github.com/propdiary/propdiary/services"
	"github.com/propdiary/propdiary/store"
)

// DefaultRetentionDays is the grace period between soft delete and
// permanent purge.
const DefaultRetentionDays = 30

// Kind names the record collection a bin item belongs to.
type Kind string

const (
	KindProperty Kind = "property"
	KindUnit     Kind = "unit"
	KindTenancy  Kind = "tenancy"
)

// Urgency buckets the remaining time of a bin item for presentation.
type Urgency string

const (
	UrgencyCritical Urgency = "critical" // 3 days or fewer
	UrgencyHigh     Urgency = "high"     // 7 days or fewer
	UrgencyMedium   Urgency = "medium"   // 14 days or fewer
	UrgencyLow      Urgency = "low"
)

// Item is one recycle-bin entry.
type Item struct {
	Kind          Kind
	ID            string
	Name          string
	Detail        string
	DeletedAt     time.Time
	DaysRemaining int
	Urgency       Urgency
}

// Engine lists, restores and purges recycle-bin contents.
type Engine struct {
	store *store.Store
	svc   *services.Services
	log   logging.Logger
	now   func() time.Time
	days  int
}

func NewEngine(st *store.Store, svc *services.Services, log logging.Logger, retentionDays int) *Engine {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &Engine{store: st, svc: svc, log: log, now: time.Now, days: retentionDays}
}

// WithClock replaces the engine's time source. Test hook.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// DaysRemaining returns the whole days left before a record deleted at
// deletedAt is purged: the remaining fraction of a day still counts as
// a full day, and the result never goes below zero.
func (e *Engine) DaysRemaining(deletedAt time.Time) int {
	deadline := deletedAt.Add(time.Duration(e.days) * 24 * time.Hour)
	left := deadline.Sub(e.now())
	if left <= 0 {
		return 0
	}
	days := int(left / (24 * time.Hour))
	if left%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func urgency(daysRemaining int) Urgency {
	switch {
	case daysRemaining <= 3:
		return UrgencyCritical
	case daysRemaining <= 7:
		return UrgencyHigh
	case daysRemaining <= 14:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// Items lists the recycle bin, most urgent first. Records whose grace
// period has already lapsed are omitted; they are gone as far as the
// caller is concerned and the next sweep removes them for good.
func (e *Engine) Items(ctx context.Context) ([]Item, error) {
	var items []Item

	props, err := e.store.Properties.ListDeleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted properties: %w", err)
	}
	for _, p := range props {
		if it, ok := e.item(KindProperty, p.ID, p.Name, p.Address, p.DeletedAt); ok {
			items = append(items, it)
		}
	}

	units, err := e.store.Units.ListDeleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted units: %w", err)
	}
	for _, u := range units {
		detail := ""
		if p, err := e.store.Properties.GetByID(ctx, u.PropertyID); err == nil && p != nil {
			detail = p.Name
		}
		if it, ok := e.item(KindUnit, u.ID, "Unit "+u.UnitNumber, detail, u.DeletedAt); ok {
			items = append(items, it)
		}
	}

	tens, err := e.store.Tenancies.ListDeleted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted tenancies: %w", err)
	}
	for _, t := range tens {
		if it, ok := e.item(KindTenancy, t.ID, t.TenantName, "", t.DeletedAt); ok {
			items = append(items, it)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].DaysRemaining == items[j].DaysRemaining {
			return items[i].DeletedAt.Before(items[j].DeletedAt)
		}
		return items[i].DaysRemaining < items[j].DaysRemaining
	})
	return items, nil
}

func (e *Engine) item(kind Kind, id, name, detail string, deletedAt *time.Time) (Item, bool) {
	if deletedAt == nil {
		return Item{}, false
	}
	remaining := e.DaysRemaining(*deletedAt)
	if remaining <= 0 {
		return Item{}, false
	}
	return Item{
		Kind:          kind,
		ID:            id,
		Name:          name,
		Detail:        detail,
		DeletedAt:     *deletedAt,
		DaysRemaining: remaining,
		Urgency:       urgency(remaining),
	}, true
}

// Restore clears a record's tombstone. It works any time before the
// sweep actually purges the record, even after the grace period has
// nominally lapsed.
func (e *Engine) Restore(ctx context.Context, kind Kind, id string) error {
	switch kind {
	case KindProperty:
		return e.svc.Properties.Restore(ctx, id)
	case KindUnit:
		return e.svc.Units.Restore(ctx, id)
	case KindTenancy:
		return e.svc.Tenancies.Restore(ctx, id)
	default:
		return fmt.Errorf("unknown recycle bin kind %q", kind)
	}
}

// Purge permanently deletes a bin item right away, without waiting out
// the grace period. Same cascade as the sweep.
func (e *Engine) Purge(ctx context.Context, kind Kind, id string) error {
	switch kind {
	case KindProperty:
		return e.svc.Properties.Delete(ctx, id)
	case KindUnit:
		return e.svc.Units.Delete(ctx, id)
	case KindTenancy:
		return e.svc.Tenancies.Delete(ctx, id)
	default:
		return fmt.Errorf("unknown recycle bin kind %q", kind)
	}
}

// Sweep purges every tombstoned record whose grace period has lapsed.
// Running it twice in a row is harmless: the second pass finds nothing.
// Properties go first so their cascade covers dependent units and
// tenancies before those are considered individually.
func (e *Engine) Sweep(ctx context.Context) error {
	purged := 0

	props, err := e.store.Properties.ListDeleted(ctx)
	if err != nil {
		return fmt.Errorf("failed to list deleted properties: %w", err)
	}
	for _, p := range props {
		if !e.expired(p.DeletedAt) {
			continue
		}
		if err := e.svc.Properties.Delete(ctx, p.ID); err != nil {
			return fmt.Errorf("failed to purge property %s: %w", p.ID, err)
		}
		purged++
	}

	units, err := e.store.Units.ListDeleted(ctx)
	if err != nil {
		return fmt.Errorf("failed to list deleted units: %w", err)
	}
	for _, u := range units {
		if !e.expired(u.DeletedAt) {
			continue
		}
		if err := e.svc.Units.Delete(ctx, u.ID); err != nil {
			return fmt.Errorf("failed to purge unit %s: %w", u.ID, err)
		}
		purged++
	}

	tens, err := e.store.Tenancies.ListDeleted(ctx)
	if err != nil {
		return fmt.Errorf("failed to list deleted tenancies: %w", err)
	}
	for _, t := range tens {
		if !e.expired(t.DeletedAt) {
			continue
		}
		if err := e.svc.Tenancies.Delete(ctx, t.ID); err != nil {
			return fmt.Errorf("failed to purge tenancy %s: %w", t.ID, err)
		}
		purged++
	}

	if purged > 0 {
		e.log.Info(ctx, "recycle bin swept", "purged", purged)
	}
	return nil
}

func (e *Engine) expired(deletedAt *time.Time) bool {
	return deletedAt != nil && e.DaysRemaining(*deletedAt) <= 0
}
