package cycle

import (
	"context"
	"time"

	"reviewwatch/internal/logging"
)

// DefaultInterval is the delay between scheduled cycles.
const DefaultInterval = time.Minute

// Runner runs one cycle.
type Runner interface {
	Run(ctx context.Context) (*Result, error)
}

// Scheduler runs a cycle at startup and then on every tick.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	trigger  chan struct{}

	// OnResult, when set, observes every cycle outcome.
	OnResult func(*Result, error)
}

func NewScheduler(runner Runner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		runner:   runner,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// Trigger asks for an extra cycle as soon as the current one ends.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Start blocks until ctx is cancelled. A cycle that is running when ctx is
// cancelled completes on its own.
func (s *Scheduler) Start(ctx context.Context) error {
	logging.Logger().Info("scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logging.Logger().Info("scheduler stopped")
			return nil
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.trigger:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	res, err := s.runner.Run(context.WithoutCancel(ctx))
	if err != nil {
		logging.Logger().Warn("scheduled cycle failed", "error", err)
	}
	if s.OnResult != nil {
		s.OnResult(res, err)
	}
}
