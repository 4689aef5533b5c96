// Package propdiary is a property management core: record stores for
// properties, units, tenancies, maintenance and insurance; a diary
// engine that derives reminder events from those records; and a
// recycle-bin retention engine that purges soft-deleted records after
// a grace period.
package propdiary

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/propdiary/propdiary/config"
	"github.com/propdiary/propdiary/diary"
	"github.com/propdiary/propdiary/internal/logging"
	"github.com/propdiary/propdiary/retention"
	"github.com/propdiary/propdiary/services"
	"github.com/propdiary/propdiary/store"
)

// App bundles the composed subsystems for a host application.
type App struct {
	Config    *config.Config
	Store     *store.Store
	Services  *services.Services
	Diary     *diary.Engine
	Retention *retention.Engine
	Sweeper   *retention.Sweeper

	logger logging.Logger
}

// Option adjusts App construction.
type Option func(*App)

// WithLogger replaces the default JSON slog logger.
func WithLogger(l logging.Logger) Option {
	return func(a *App) { a.logger = l }
}

// NewApp opens the database at cfg.DatabasePath, migrates it and wires
// the services and engines together. Call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	app := &App{Config: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	svc := services.New(st, app.logger)
	ret := retention.NewEngine(st, svc, app.logger, cfg.RetentionDays)

	app.Store = st
	app.Services = svc
	app.Diary = diary.NewEngine(st, app.logger)
	app.Retention = ret
	app.Sweeper = retention.NewSweeper(ret, app.logger, cfg.SweepInterval)
	return app, nil
}

// Run starts the background sweeper and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.logger.Info(ctx, "starting app", "database", a.Config.DatabasePath)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Sweeper.Start(ctx)
	}()
	wg.Wait()
}

// Close releases the underlying database.
func (a *App) Close() error {
	return a.Store.Close()
}
