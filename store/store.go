// Package store opens the local database and bundles one repository
// per record collection.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/propdiary/propdiary/store/epcs"
	"github.com/propdiary/propdiary/store/insurance"
	"github.com/propdiary/propdiary/store/maintenance"
	"github.com/propdiary/propdiary/store/migrations"
	"github.com/propdiary/propdiary/store/overlay"
	"github.com/propdiary/propdiary/store/properties"
	"github.com/propdiary/propdiary/store/tenancies"
	"github.com/propdiary/propdiary/store/units"

	_ "modernc.org/sqlite"
)

// Store is the set of record repositories over one SQLite database.
type Store struct {
	DB          *sql.DB
	Properties  properties.Repository
	Units       units.Repository
	Tenancies   tenancies.Repository
	Maintenance maintenance.Repository
	Insurance   insurance.Repository
	EPCs        epcs.Repository
	Documents   overlay.Repository
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at dsn, migrates it and
// returns the repository bundle. Use ":memory:" for an ephemeral store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &Store{
		DB:          db,
		Properties:  properties.NewSQLiteRepository(db),
		Units:       units.NewSQLiteRepository(db),
		Tenancies:   tenancies.NewSQLiteRepository(db),
		Maintenance: maintenance.NewSQLiteRepository(db),
		Insurance:   insurance.NewSQLiteRepository(db),
		EPCs:        epcs.NewSQLiteRepository(db),
		Documents:   overlay.NewSQLiteRepository(db),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}
