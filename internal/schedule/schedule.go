// Package schedule drives the recurring report job.
package schedule

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type JobFunc func(ctx context.Context) error

// Runner invokes a job on a fixed interval until stopped. Job failures are
// logged and the loop continues; the next tick is the retry.
type Runner struct {
	run      JobFunc
	interval time.Duration
	log      *slog.Logger
	stop     chan struct{}
	stopOnce sync.Once
}

func New(run JobFunc, interval time.Duration, logger *slog.Logger) *Runner {
	return &Runner{
		run:      run,
		interval: interval,
		log:      logger,
		stop:     make(chan struct{}),
	}
}

func (r *Runner) Start() {
	r.log.Info("report scheduler started", "interval", r.interval.String())
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if err := r.run(ctx); err != nil {
					r.log.Error("scheduled report failed", "err", err)
				}
				cancel()
			case <-r.stop:
				r.log.Info("report scheduler stopped")
				return
			}
		}
	}()
}

// Stop is safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}
