package retention

import (
	"context"
	"time"

	"github.com/propdiary/propdiary/internal/logging"
)

// DefaultSweepInterval is how often the background sweeper re-checks
// the bin. The grace period is measured in days, so hourly is plenty.
const DefaultSweepInterval = time.Hour

// Sweeper runs the retention sweep on a fixed interval.
type Sweeper struct {
	engine   *Engine
	log      logging.Logger
	interval time.Duration
	notifyCh chan struct{}
}

func NewSweeper(engine *Engine, log logging.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		engine:   engine,
		log:      log,
		interval: interval,
		notifyCh: make(chan struct{}, 1),
	}
}

// Notify requests an immediate sweep. Non-blocking; a pending request
// coalesces with the next one.
func (s *Sweeper) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// Start blocks, sweeping once right away and then on every tick or
// Notify call, until ctx is cancelled. Run it in a goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	s.log.Info(ctx, "retention sweeper started", "interval", s.interval.String())
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info(ctx, "retention sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.notifyCh:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if err := s.engine.Sweep(ctx); err != nil {
		s.log.Error(ctx, "retention sweep failed", "error", err)
	}
}
