package overlay

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE documents (name TEXT PRIMARY KEY, body BLOB NOT NULL);`)
	require.NoError(t, err)

	return db
}

func TestGet_MissingDocument(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	body, err := r.Get(context.Background(), "diary_events")
	require.NoError(t, err)
	assert.Nil(t, body, "a never-written document reads as nil, not an error")
}

func TestPut_InsertThenOverwrite(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "diary_events", []byte(`{"version":1}`)))

	body, err := r.Get(ctx, "diary_events")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), body)

	require.NoError(t, r.Put(ctx, "diary_events", []byte(`{"version":1,"events":{}}`)))

	body, err = r.Get(ctx, "diary_events")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1,"events":{}}`), body)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n))
	assert.Equal(t, 1, n, "overwrite must not create a second row")
}

func TestDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "dismissed_diary_events", []byte(`{}`)))
	require.NoError(t, r.Delete(ctx, "dismissed_diary_events"))

	body, err := r.Get(ctx, "dismissed_diary_events")
	require.NoError(t, err)
	assert.Nil(t, body)

	// deleting again is a no-op
	require.NoError(t, r.Delete(ctx, "dismissed_diary_events"))
}
