// Package scheduler drives the periodic scrape cycle.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"jobcrawler/internal/ports"
)

// Cron runs the cycle on a fixed interval, with one immediate run at
// startup so a fresh deployment has data before the first tick.
type Cron struct {
	spec string
	cron *cron.Cron
}

var _ ports.Scheduler = (*Cron)(nil)

// NewCron builds a scheduler firing every intervalHours hours.
func NewCron(intervalHours int) *Cron {
	if intervalHours <= 0 {
		intervalHours = 1
	}
	return &Cron{
		spec: fmt.Sprintf("@every %dh", intervalHours),
		cron: cron.New(),
	}
}

// Start registers job and begins ticking. The first invocation happens
// immediately in its own goroutine rather than after a full interval.
func (c *Cron) Start(ctx context.Context, job func(time.Time)) error {
	if _, err := c.cron.AddFunc(c.spec, func() { job(time.Now()) }); err != nil {
		return fmt.Errorf("schedule cycle: %w", err)
	}
	c.cron.Start()

	go func() {
		if ctx.Err() == nil {
			job(time.Now())
		}
	}()
	return nil
}

// Stop halts the ticker and waits for a running invocation to return.
func (c *Cron) Stop(ctx context.Context) error {
	done := c.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
