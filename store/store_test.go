package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propdiary/propdiary/models"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestOpen_MigratesAndRoundTrips(t *testing.T) {
	st := setupStore(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC)

	p := &models.Property{
		ID:        "p1",
		Name:      "Riverside House",
		Address:   "1 Quay Street",
		Status:    models.PropertyActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, st.Properties.Insert(ctx, p))

	got, err := st.Properties.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Riverside House", got.Name)

	policy := &models.InsurancePolicy{
		ID:            "i1",
		PropertyIDs:   models.PropertyIDs{"p1"},
		PolicyType:    "Buildings",
		StartDate:     now,
		ExpiryDate:    now.AddDate(1, 0, 0),
		DiarySettings: models.DeadlineRule{Enabled: true, DaysBefore: 45},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, st.Insurance.Insert(ctx, policy))

	gotPolicy, err := st.Insurance.GetByID(ctx, "i1")
	require.NoError(t, err)
	require.NotNil(t, gotPolicy)
	assert.Equal(t, models.PropertyIDs{"p1"}, gotPolicy.PropertyIDs)
	assert.Equal(t, 45, gotPolicy.DiarySettings.DaysBefore)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	st := setupStore(t)
	require.NoError(t, RunMigrations(context.Background(), st.DB))
}
