package retention

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdiary/propdiary/internal/logging"
	"github.com/propdiary/propdiary/models"
	"github.com/propdiary/propdiary/services"
	"github.com/propdiary/propdiary/store"
)

type fixture struct {
	store  *store.Store
	svc    *services.Services
	engine *Engine

	mu  sync.Mutex
	now time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	f := &fixture{
		store: st,
		now:   time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.now
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.svc = services.New(st, log).WithClock(clock)
	f.engine = NewEngine(st, f.svc, log, DefaultRetentionDays).WithClock(clock)
	return f
}

// advance moves the shared clock forward for every service and the
// engine at once.
func (f *fixture) advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func (f *fixture) property(t *testing.T, name string) *models.Property {
	t.Helper()
	p, err := f.svc.Properties.Create(context.Background(), models.Property{Name: name})
	require.NoError(t, err)
	return p
}

func (f *fixture) unit(t *testing.T, propertyID, number string) *models.Unit {
	t.Helper()
	u, err := f.svc.Units.Create(context.Background(), models.Unit{PropertyID: propertyID, UnitNumber: number})
	require.NoError(t, err)
	return u
}

func (f *fixture) tenancy(t *testing.T, unitID, tenant string) *models.Tenancy {
	t.Helper()
	tn, err := f.svc.Tenancies.Create(context.Background(), models.Tenancy{
		UnitID:         unitID,
		TenantName:     tenant,
		LeaseStartDate: f.now.AddDate(-1, 0, 0),
		LeaseEndDate:   f.now.AddDate(2, 0, 0),
	})
	require.NoError(t, err)
	return tn
}

const day = 24 * time.Hour

func TestDaysRemaining(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name      string
		deletedAt time.Time
		want      int
	}{
		{"just deleted", f.now, 30},
		{"five days in", f.now.Add(-5 * day), 25},
		{"half a day left rounds up", f.now.Add(-29*day - 12*time.Hour), 1},
		{"exactly expired", f.now.Add(-30 * day), 0},
		{"long expired clamps at zero", f.now.Add(-45 * day), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.engine.DaysRemaining(tt.deletedAt))
		})
	}
}

func TestUrgencyBands(t *testing.T) {
	assert.Equal(t, UrgencyCritical, urgency(1))
	assert.Equal(t, UrgencyCritical, urgency(3))
	assert.Equal(t, UrgencyHigh, urgency(7))
	assert.Equal(t, UrgencyMedium, urgency(14))
	assert.Equal(t, UrgencyLow, urgency(15))
}

func TestItems_SortedMostUrgentFirst(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p1 := f.property(t, "Riverside House")
	p2 := f.property(t, "Harbour Court")
	u := f.unit(t, p2.ID, "2A")

	// p1 deleted 20 days ago, the unit deleted just now
	require.NoError(t, f.svc.Properties.SoftDelete(ctx, p1.ID))
	f.advance(20 * day)
	require.NoError(t, f.svc.Units.SoftDelete(ctx, u.ID))

	items, err := f.engine.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, KindProperty, items[0].Kind)
	assert.Equal(t, p1.ID, items[0].ID)
	assert.Equal(t, 10, items[0].DaysRemaining)
	assert.Equal(t, UrgencyMedium, items[0].Urgency)

	assert.Equal(t, KindUnit, items[1].Kind)
	assert.Equal(t, "Unit 2A", items[1].Name)
	assert.Equal(t, "Harbour Court", items[1].Detail)
	assert.Equal(t, 30, items[1].DaysRemaining)
}

func TestItems_OmitsExpired(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p := f.property(t, "Riverside House")
	require.NoError(t, f.svc.Properties.SoftDelete(ctx, p.ID))
	f.advance(31 * day)

	items, err := f.engine.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items, "lapsed items are invisible even before the sweep runs")
}

func TestRestore_BeforeSweep(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p := f.property(t, "Riverside House")
	require.NoError(t, f.svc.Properties.SoftDelete(ctx, p.ID))
	require.NoError(t, f.engine.Restore(ctx, KindProperty, p.ID))

	got, err := f.store.Properties.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDeleted)
	assert.Nil(t, got.DeletedAt)

	items, err := f.engine.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRestore_UnknownKind(t *testing.T) {
	f := setup(t)
	require.Error(t, f.engine.Restore(context.Background(), Kind("gadget"), "x"))
}

func TestSweep_PurgesLapsedWithCascade(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p := f.property(t, "Riverside House")
	u := f.unit(t, p.ID, "1A")
	tn := f.tenancy(t, u.ID, "Acme Trading Ltd")

	keep := f.property(t, "Harbour Court")
	require.NoError(t, f.svc.Properties.SoftDelete(ctx, p.ID))

	f.advance(15 * day)
	require.NoError(t, f.svc.Properties.SoftDelete(ctx, keep.ID))

	f.advance(16 * day) // p lapsed 31 days ago, keep only 16

	require.NoError(t, f.engine.Sweep(ctx))

	gone, err := f.store.Properties.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	goneUnit, err := f.store.Units.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, goneUnit, "purge cascades to units")

	goneTen, err := f.store.Tenancies.GetByID(ctx, tn.ID)
	require.NoError(t, err)
	assert.Nil(t, goneTen, "purge cascades to tenancies")

	kept, err := f.store.Properties.GetByID(ctx, keep.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.IsDeleted, "items inside the grace period stay binned")
}

func TestSweep_Idempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p := f.property(t, "Riverside House")
	require.NoError(t, f.svc.Properties.SoftDelete(ctx, p.ID))
	f.advance(31 * day)

	require.NoError(t, f.engine.Sweep(ctx))
	require.NoError(t, f.engine.Sweep(ctx), "a second pass finds nothing to do")

	items, err := f.engine.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPurge_Immediate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p := f.property(t, "Riverside House")
	u := f.unit(t, p.ID, "1A")
	require.NoError(t, f.svc.Units.SoftDelete(ctx, u.ID))

	require.NoError(t, f.engine.Purge(ctx, KindUnit, u.ID))

	gone, err := f.store.Units.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
