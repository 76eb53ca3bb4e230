package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	coreagg "github.com/playground-analytics/aggview/internal/core/aggregation"
	"github.com/robfig/cron/v3"
)

// Scheduler triggers the aggregation job on a fixed interval or a cron schedule.
// It is stateless: each tick re-derives the cursor from the stores.
type Scheduler struct {
	interval time.Duration
	schedule cron.Schedule
	job      *Job
	nowFn    func() time.Time
}

// NewScheduler creates a periodic trigger for job.
func NewScheduler(interval time.Duration, job *Job) *Scheduler {
	return &Scheduler{
		interval: interval,
		job:      job,
		nowFn:    time.Now,
	}
}

// NewCronScheduler creates a trigger that fires on a cron spec, evaluated in UTC.
func NewCronScheduler(spec string, job *Job) (*Scheduler, error) {
	schedule, err := coreagg.ParseSchedule(spec)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		schedule: schedule,
		job:      job,
		nowFn:    time.Now,
	}, nil
}

// next returns the fire time following t.
func (s *Scheduler) next(t time.Time) time.Time {
	if s.schedule != nil {
		return s.schedule.Next(t)
	}
	return t.Add(s.interval)
}

// Start runs the job once immediately, then on every tick.
// Runs until context is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.schedule == nil && s.interval <= 0 {
		return fmt.Errorf("scheduler interval must be > 0, got %s", s.interval)
	}

	slog.Info("[Scheduler] Starting aggregation scheduler",
		"interval", s.interval,
		"cron", s.schedule != nil,
		"max_hours", s.job.opts.MaxHours,
		"safety_margin", s.job.opts.SafetyMargin,
	)

	s.tick(ctx, time.Time{})

	for {
		fireAt := s.next(s.nowFn())
		wait := time.Until(fireAt)
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)

		select {
		case <-timer.C:
			s.tick(ctx, fireAt)
		case <-ctx.Done():
			timer.Stop()
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}

// tick runs the job. fireAt is the time the loop was waiting for; zero for the
// initial run.
func (s *Scheduler) tick(ctx context.Context, fireAt time.Time) {
	now := s.nowFn()
	if s.pastDue(now, fireAt) {
		slog.Warn("[Scheduler] Trigger is past due",
			"expected", fireAt,
			"late_by", now.Sub(fireAt),
		)
	}

	res, shared, err := s.job.Trigger(ctx)
	if err != nil {
		slog.Error("[Scheduler] Aggregation run failed",
			"error", err,
			"hours_processed", res.HoursProcessed,
			"note", "Will resume on next tick",
		)
		return
	}
	if shared {
		slog.Info("[Scheduler] Joined aggregation run already in progress", "status", res.Status)
	}
}

// pastDue reports whether a trigger at now is late by more than half a period
// relative to the fire time it was scheduled for. The wait for the next fire
// starts after the previous run returns, so run duration never counts as lateness.
func (s *Scheduler) pastDue(now, fireAt time.Time) bool {
	if fireAt.IsZero() {
		return false
	}
	period := s.next(fireAt).Sub(fireAt)
	return now.Sub(fireAt) > period/2
}
