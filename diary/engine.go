// Package diary derives reminder events from record data. Events are
// never stored: every read recomputes them from the live tenancy,
// maintenance and insurance records and merges in the persisted
// annotation overlay, so an event disappears the moment its source
// record is archived, deleted or falls out of its activation window.
package diary

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/propdiary/propdiary/internal/logging"
	"github.com/propdiary/propdiary/models"
	"github.com/propdiary/propdiary/store"
)

// Horizon of the dashboard digest and the boundary of its urgent
// presentation bucket, in days.
const (
	digestHorizonDays = 30
	digestTopEvents   = 5
	urgentWithinDays  = 7
)

// Engine computes diary events on demand.
type Engine struct {
	store *store.Store
	log   logging.Logger
	now   func() time.Time
}

func NewEngine(st *store.Store, log logging.Logger) *Engine {
	return &Engine{store: st, log: log, now: time.Now}
}

// WithClock replaces the engine's time source. Test hook.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Events returns the active diary: every derived event whose source
// rule is in its activation window, minus archived and dismissed ones,
// sorted by event date ascending.
func (e *Engine) Events(ctx context.Context) ([]models.DiaryEvent, error) {
	all, err := e.compute(ctx)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, ev := range all {
		if !ev.IsArchived {
			active = append(active, ev)
		}
	}
	return active, nil
}

// ArchivedEvents returns the archived portion of the diary, sorted by
// event date ascending.
func (e *Engine) ArchivedEvents(ctx context.Context) ([]models.DiaryEvent, error) {
	all, err := e.compute(ctx)
	if err != nil {
		return nil, err
	}
	archived := all[:0]
	for _, ev := range all {
		if ev.IsArchived {
			archived = append(archived, ev)
		}
	}
	return archived, nil
}

// UpcomingEvent is a dashboard entry: an active event with its
// distance from today precomputed.
type UpcomingEvent struct {
	models.DiaryEvent
	DaysUntil int
}

// Urgent reports whether the event falls in the urgent presentation
// bucket.
func (u UpcomingEvent) Urgent() bool {
	return u.DaysUntil <= urgentWithinDays
}

// Digest is the dashboard summary: the closest upcoming events and a
// count of how many more fall inside the horizon.
type Digest struct {
	Upcoming []UpcomingEvent
	More     int
}

// Dashboard returns the events due within the next thirty days, closest
// first, truncated to the top five with a remainder count.
func (e *Engine) Dashboard(ctx context.Context) (*Digest, error) {
	events, err := e.Events(ctx)
	if err != nil {
		return nil, err
	}
	today := e.now()
	var upcoming []UpcomingEvent
	for _, ev := range events {
		d := daysBetween(today, ev.EventDate)
		if d <= digestHorizonDays {
			upcoming = append(upcoming, UpcomingEvent{DiaryEvent: ev, DaysUntil: d})
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DaysUntil < upcoming[j].DaysUntil
	})
	digest := &Digest{Upcoming: upcoming}
	if len(upcoming) > digestTopEvents {
		digest.More = len(upcoming) - digestTopEvents
		digest.Upcoming = upcoming[:digestTopEvents]
	}
	return digest, nil
}

// Save upserts the annotation of an event: its negotiation status and
// free-form comments. The annotation keeps its identity through
// recomputation, so it reattaches whenever the same event reappears.
func (e *Engine) Save(ctx context.Context, eventID string, status models.EventStatus, comments string) error {
	ann := e.loadAnnotations(ctx)
	ts := e.now()
	a, ok := ann[eventID]
	if !ok {
		a = Annotation{CreatedAt: ts}
	}
	a.Status = status
	a.Comments = comments
	a.UpdatedAt = ts
	ann[eventID] = a
	return e.saveAnnotations(ctx, ann)
}

// Archive hides an event from the active diary without touching its
// annotation.
func (e *Engine) Archive(ctx context.Context, eventID string) error {
	set := e.loadIDSet(ctx, docArchived)
	set[eventID] = true
	return e.saveIDSet(ctx, docArchived, set)
}

// RestoreArchived moves an archived event back to the active diary.
func (e *Engine) RestoreArchived(ctx context.Context, eventID string) error {
	set := e.loadIDSet(ctx, docArchived)
	delete(set, eventID)
	return e.saveIDSet(ctx, docArchived, set)
}

// Dismiss permanently removes an event from the diary. The dismissal is
// persisted so the event does not reappear on the next computation, and
// its annotation and archive flag are dropped.
func (e *Engine) Dismiss(ctx context.Context, eventID string) error {
	dismissed := e.loadIDSet(ctx, docDismissed)
	dismissed[eventID] = true
	if err := e.saveIDSet(ctx, docDismissed, dismissed); err != nil {
		return err
	}
	ann := e.loadAnnotations(ctx)
	if _, ok := ann[eventID]; ok {
		delete(ann, eventID)
		if err := e.saveAnnotations(ctx, ann); err != nil {
			return err
		}
	}
	archived := e.loadIDSet(ctx, docArchived)
	if archived[eventID] {
		delete(archived, eventID)
		if err := e.saveIDSet(ctx, docArchived, archived); err != nil {
			return err
		}
	}
	return nil
}

// compute derives the full event set, merges the overlay and sorts by
// event date.
func (e *Engine) compute(ctx context.Context) ([]models.DiaryEvent, error) {
	today := dateOnly(e.now())

	props, err := e.store.Properties.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	propByID := make(map[string]*models.Property, len(props))
	for i := range props {
		propByID[props[i].ID] = &props[i]
	}

	unitList, err := e.store.Units.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	unitByID := make(map[string]*models.Unit, len(unitList))
	for i := range unitList {
		unitByID[unitList[i].ID] = &unitList[i]
	}

	var events []models.DiaryEvent
	tenancyEvents, err := e.tenancyEvents(ctx, today, propByID, unitByID)
	if err != nil {
		return nil, err
	}
	events = append(events, tenancyEvents...)

	maintenanceEvents, err := e.maintenanceEvents(ctx, today, propByID, unitByID)
	if err != nil {
		return nil, err
	}
	events = append(events, maintenanceEvents...)

	insuranceEvents, err := e.insuranceEvents(ctx, today, propByID)
	if err != nil {
		return nil, err
	}
	events = append(events, insuranceEvents...)

	ann := e.loadAnnotations(ctx)
	archived := e.loadIDSet(ctx, docArchived)
	dismissed := e.loadIDSet(ctx, docDismissed)

	merged := events[:0]
	for _, ev := range events {
		if dismissed[ev.ID] {
			continue
		}
		if a, ok := ann[ev.ID]; ok {
			ev.Comments = a.Comments
			if a.Status != "" {
				ev.Status = a.Status
			}
			ev.CreatedAt = a.CreatedAt
			ev.UpdatedAt = a.UpdatedAt
		}
		ev.IsArchived = archived[ev.ID]
		merged = append(merged, ev)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].EventDate.Equal(merged[j].EventDate) {
			return merged[i].ID < merged[j].ID
		}
		return merged[i].EventDate.Before(merged[j].EventDate)
	})
	return merged, nil
}

// tenancyEvents derives lease expiry, rent review and break clause
// events from the active tenancies. A rule activates once today is
// within its calendar-month lookback of the target date, and the event
// lives until the date passes.
func (e *Engine) tenancyEvents(ctx context.Context, today time.Time, propByID map[string]*models.Property, unitByID map[string]*models.Unit) ([]models.DiaryEvent, error) {
	tenancyList, err := e.store.Tenancies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenancies: %w", err)
	}

	var events []models.DiaryEvent
	for i := range tenancyList {
		t := &tenancyList[i]
		if !t.Live() || t.Status != models.TenancyActive {
			continue
		}
		unit := unitByID[t.UnitID]
		if unit != nil && !unit.Live() {
			continue
		}
		var prop *models.Property
		if unit != nil {
			prop = propByID[unit.PropertyID]
			if prop != nil && !prop.Live() {
				continue
			}
		}

		propertyName, unitNumber := "Unknown Property", "Unknown Unit"
		propertyID, unitID := "", t.UnitID
		if prop != nil {
			propertyName, propertyID = prop.Name, prop.ID
		}
		if unit != nil {
			unitNumber = unit.UnitNumber
		}

		base := models.DiaryEvent{
			PropertyID:   propertyID,
			UnitID:       unitID,
			TenancyID:    t.ID,
			PropertyName: propertyName,
			UnitNumber:   unitNumber,
			TenantName:   t.TenantName,
			MonthlyRent:  t.MonthlyRent,
			Status:       models.StatusPending,
		}

		if d := t.LeaseEndDate; t.DiarySettings.LeaseExpiry.Enabled && !d.IsZero() {
			if ruleActive(today, d, t.DiarySettings.LeaseExpiry.Window()) {
				ev := base
				ev.ID = models.EventID(models.EventLeaseExpiry, t.ID)
				ev.EventType = models.EventLeaseExpiry
				ev.EventDate = dateOnly(d)
				ev.Title = fmt.Sprintf("Lease expiry: %s, %s", propertyName, unitNumber)
				ev.Description = fmt.Sprintf("Lease for %s ends on %s", t.TenantName, formatDate(d))
				events = append(events, ev)
			}
		}
		if d := t.RentReviewDate; t.DiarySettings.RentReview.Enabled && d != nil {
			if ruleActive(today, *d, t.DiarySettings.RentReview.Window()) {
				ev := base
				ev.ID = models.EventID(models.EventRentReview, t.ID)
				ev.EventType = models.EventRentReview
				ev.EventDate = dateOnly(*d)
				ev.Title = fmt.Sprintf("Rent review: %s, %s", propertyName, unitNumber)
				ev.Description = fmt.Sprintf("Rent review for %s due on %s", t.TenantName, formatDate(*d))
				events = append(events, ev)
			}
		}
		if d := t.BreakDate; t.DiarySettings.TenancyBreak.Enabled && d != nil {
			if ruleActive(today, *d, t.DiarySettings.TenancyBreak.Window()) {
				ev := base
				ev.ID = models.EventID(models.EventTenancyBreak, t.ID)
				ev.EventType = models.EventTenancyBreak
				ev.EventDate = dateOnly(*d)
				ev.Title = fmt.Sprintf("Break clause: %s, %s", propertyName, unitNumber)
				ev.Description = fmt.Sprintf("Break option for %s exercisable on %s", t.TenantName, formatDate(*d))
				events = append(events, ev)
			}
		}
	}
	return events, nil
}

// maintenanceEvents derives deadline events from open maintenance
// issues. These use a day-based lookahead rather than the tenancy
// rules' month lookback.
func (e *Engine) maintenanceEvents(ctx context.Context, today time.Time, propByID map[string]*models.Property, unitByID map[string]*models.Unit) ([]models.DiaryEvent, error) {
	issues, err := e.store.Maintenance.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list maintenance issues: %w", err)
	}

	var events []models.DiaryEvent
	for i := range issues {
		m := &issues[i]
		if !m.Live() || m.Status == models.MaintenanceCompleted {
			continue
		}
		if !m.DiarySettings.Enabled || m.Deadline == nil {
			continue
		}
		d := daysBetween(today, *m.Deadline)
		if d < 0 || d > m.DiarySettings.WindowDays() {
			continue
		}
		prop := propByID[m.PropertyID]
		if prop != nil && !prop.Live() {
			continue
		}
		propertyName := "Unknown Property"
		if prop != nil {
			propertyName = prop.Name
		}
		unitNumber := ""
		if unit := unitByID[m.UnitID]; unit != nil {
			unitNumber = unit.UnitNumber
		}
		events = append(events, models.DiaryEvent{
			ID:           models.EventID(models.EventMaintenanceDeadline, m.ID),
			EventType:    models.EventMaintenanceDeadline,
			EventDate:    dateOnly(*m.Deadline),
			Title:        fmt.Sprintf("Maintenance deadline: %s", m.Title),
			Description:  fmt.Sprintf("%s at %s due by %s", m.Title, propertyName, formatDate(*m.Deadline)),
			PropertyID:   m.PropertyID,
			UnitID:       m.UnitID,
			PropertyName: propertyName,
			UnitNumber:   unitNumber,
			Status:       models.StatusPending,
		})
	}
	return events, nil
}

// insuranceEvents derives expiry events from live insurance policies.
func (e *Engine) insuranceEvents(ctx context.Context, today time.Time, propByID map[string]*models.Property) ([]models.DiaryEvent, error) {
	policies, err := e.store.Insurance.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list insurance policies: %w", err)
	}

	var events []models.DiaryEvent
	for i := range policies {
		p := &policies[i]
		if !p.Live() || !p.DiarySettings.Enabled || p.ExpiryDate.IsZero() {
			continue
		}
		d := daysBetween(today, p.ExpiryDate)
		if d < 0 || d > p.DiarySettings.WindowDays() {
			continue
		}
		propertyName, propertyID := "Unknown Property", ""
		for _, id := range p.PropertyIDs {
			if prop := propByID[id]; prop != nil && prop.Live() {
				propertyName, propertyID = prop.Name, prop.ID
				break
			}
		}
		events = append(events, models.DiaryEvent{
			ID:           models.EventID(models.EventInsuranceExpiry, p.ID),
			EventType:    models.EventInsuranceExpiry,
			EventDate:    dateOnly(p.ExpiryDate),
			Title:        fmt.Sprintf("Insurance expiry: %s", p.PolicyType),
			Description:  fmt.Sprintf("Policy %s with %s expires on %s", p.PolicyNumber, p.InsuranceCompany, formatDate(p.ExpiryDate)),
			PropertyID:   propertyID,
			PropertyName: propertyName,
			Status:       models.StatusPending,
		})
	}
	return events, nil
}

// ruleActive reports whether a month-lookback rule has entered its
// activation window: today is on or after the clamped calendar-month
// subtraction from the target date, and the date has not passed.
func ruleActive(today, target time.Time, monthsBefore int) bool {
	target = dateOnly(target)
	if target.Before(today) {
		return false
	}
	return !today.Before(monthsEarlier(target, monthsBefore))
}

func formatDate(t time.Time) string {
	return t.Format("2 Jan 2006")
}
