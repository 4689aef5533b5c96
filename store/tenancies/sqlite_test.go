package tenancies

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdiary/propdiary/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE tenancies (
    id TEXT PRIMARY KEY,
    unit_id TEXT NOT NULL,
    tenant_name TEXT NOT NULL,
    tenant_email TEXT NOT NULL DEFAULT '',
    tenant_phone TEXT NOT NULL DEFAULT '',
    lease_start_date TIMESTAMP NOT NULL,
    lease_end_date TIMESTAMP NOT NULL,
    monthly_rent REAL NOT NULL DEFAULT 0,
    security_deposit REAL NOT NULL DEFAULT 0,
    break_date TIMESTAMP,
    break_type TEXT NOT NULL DEFAULT '',
    rent_review_date TIMESTAMP,
    rent_review_type TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    diary_settings TEXT NOT NULL DEFAULT '{}',
    status TEXT NOT NULL DEFAULT 'active',
    is_archived INTEGER NOT NULL DEFAULT 0,
    is_deleted INTEGER NOT NULL DEFAULT 0,
    deleted_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);`)
	require.NoError(t, err)

	return db
}

func sampleTenancy(id, unitID string) *models.Tenancy {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return &models.Tenancy{
		ID:             id,
		UnitID:         unitID,
		TenantName:     "Acme Trading Ltd",
		TenantEmail:    "lettings@acme.example",
		LeaseStartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		LeaseEndDate:   time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent:    2500,
		DiarySettings: models.TenancyDiarySettings{
			LeaseExpiry: models.ReminderRule{Enabled: true, MonthsBefore: 6},
			RentReview:  models.ReminderRule{Enabled: true},
		},
		Status:    models.TenancyActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInsertAndGetByID_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	in := sampleTenancy("t1", "u1")
	review := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	in.RentReviewDate = &review
	require.NoError(t, r.Insert(ctx, in))

	got, err := r.GetByID(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Acme Trading Ltd", got.TenantName)
	assert.Equal(t, models.TenancyActive, got.Status)
	assert.True(t, got.LeaseEndDate.Equal(in.LeaseEndDate))
	require.NotNil(t, got.RentReviewDate)
	assert.True(t, got.RentReviewDate.Equal(review))
	assert.Nil(t, got.BreakDate)

	// the JSON settings column survives the round trip
	assert.Equal(t, in.DiarySettings, got.DiarySettings)
	assert.Equal(t, 6, got.DiarySettings.LeaseExpiry.Window())
	assert.Equal(t, 3, got.DiarySettings.RentReview.Window(), "unset lookback defaults to three months")
}

func TestGetByID_Missing(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	got, err := r.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestList_ExcludesDeleted(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, sampleTenancy("t1", "u1")))

	deleted := sampleTenancy("t2", "u1")
	deleted.IsDeleted = true
	ts := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	deleted.DeletedAt = &ts
	require.NoError(t, r.Insert(ctx, deleted))

	live, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, live, 1)
	assert.Equal(t, "t1", live[0].ID)

	binned, err := r.ListDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, binned, 1)
	assert.Equal(t, "t2", binned[0].ID)
	require.NotNil(t, binned[0].DeletedAt)
	assert.True(t, binned[0].DeletedAt.Equal(ts))
}

func TestListByUnit_And_DeleteByUnit(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, sampleTenancy("t1", "u1")))
	require.NoError(t, r.Insert(ctx, sampleTenancy("t2", "u1")))
	require.NoError(t, r.Insert(ctx, sampleTenancy("t3", "u2")))

	forUnit, err := r.ListByUnit(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, forUnit, 2)

	require.NoError(t, r.DeleteByUnit(ctx, "u1"))

	forUnit, err = r.ListByUnit(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, forUnit)

	other, err := r.ListByUnit(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	in := sampleTenancy("t1", "u1")
	require.NoError(t, r.Insert(ctx, in))

	in.Status = models.TenancyTerminated
	in.MonthlyRent = 2750
	in.DiarySettings.TenancyBreak = models.ReminderRule{Enabled: true, MonthsBefore: 12}
	require.NoError(t, r.Update(ctx, in))

	got, err := r.GetByID(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.TenancyTerminated, got.Status)
	assert.Equal(t, 2750.0, got.MonthlyRent)
	assert.Equal(t, 12, got.DiarySettings.TenancyBreak.MonthsBefore)
}
