package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"jobcrawler/internal/ports"
)

// CycleRunner is the part of the orchestrator the scheduler needs.
type CycleRunner interface {
	RunCycle(ctx context.Context) (CycleReport, error)
}

// Scheduler keeps the orchestrator alive across failures: every tick is
// wrapped in a panic recover, and a failed cycle gets one retry after a
// cooldown instead of waiting a full interval with no data.
type Scheduler struct {
	runner   CycleRunner
	driver   ports.Scheduler
	logger   *slog.Logger
	cooldown time.Duration
}

func NewScheduler(runner CycleRunner, driver ports.Scheduler, logger *slog.Logger, cooldown time.Duration) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &Scheduler{runner: runner, driver: driver, logger: logger, cooldown: cooldown}
}

// Start begins periodic execution. It returns once the driver is armed;
// cycles run on the driver's goroutines.
func (s *Scheduler) Start(ctx context.Context) error {
	return s.driver.Start(ctx, func(at time.Time) {
		s.runProtected(ctx, at)
	})
}

// Stop halts the driver and waits for an in-flight cycle.
func (s *Scheduler) Stop(ctx context.Context) error {
	return s.driver.Stop(ctx)
}

func (s *Scheduler) runProtected(ctx context.Context, at time.Time) {
	if s.runOnce(ctx, at) {
		return
	}

	// One retry after a cooldown; a second failure waits for the next tick.
	select {
	case <-time.After(s.cooldown):
	case <-ctx.Done():
		return
	}
	s.logger.Info("retrying scrape cycle after cooldown")
	s.runOnce(ctx, at)
}

// runOnce reports whether the tick is settled. A panicking cycle counts
// as a failed one, so it gets the same cooldown retry as an error.
func (s *Scheduler) runOnce(ctx context.Context, at time.Time) (settled bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scrape cycle panicked", "panic", r)
			settled = false
		}
	}()

	report, err := s.runner.RunCycle(ctx)
	switch {
	case errors.Is(err, ErrCycleInFlight):
		s.logger.Info("skipping tick, cycle already running", "tick", at)
		return true
	case errors.Is(err, context.Canceled):
		return true
	case err != nil:
		s.logger.Error("scrape cycle failed", "cycle", report.ID, "error", err)
		return false
	default:
		return true
	}
}
