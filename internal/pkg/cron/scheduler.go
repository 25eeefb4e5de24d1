package cron

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler drives one recurring job on a fixed interval. The sync pass is
// the only scheduled work in this system, so there is no job registry: one
// name, one interval, one function.
type Scheduler struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func NewScheduler(name string, interval time.Duration, fn func(ctx context.Context) error) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		name:     name,
		interval: interval,
		fn:       fn,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start launches the loop. The job runs once immediately, then on every
// tick until Stop. Not safe to call twice.
func (s *Scheduler) Start() {
	s.started = true
	go s.loop()
	slog.Info("Schedule started", "job", s.name, "interval", s.interval)
}

func (s *Scheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.run()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.run()
		}
	}
}

func (s *Scheduler) run() {
	start := time.Now()
	if err := s.fn(s.ctx); err != nil {
		slog.Error("Scheduled job failed", "job", s.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Scheduled job finished", "job", s.name, "duration", time.Since(start))
}

// Stop cancels the loop and waits for any in-flight run to return.
func (s *Scheduler) Stop() {
	s.cancel()
	if s.started {
		<-s.done
	}
	slog.Info("Schedule stopped", "job", s.name)
}

// RunOnce executes the job immediately, outside the schedule.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return s.fn(ctx)
}
