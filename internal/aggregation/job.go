package aggregation

import (
	"context"
	"log/slog"
	"time"

	v1 "github.com/playground-analytics/aggview/internal/api/v1"
	coreagg "github.com/playground-analytics/aggview/internal/core/aggregation"
	"github.com/playground-analytics/aggview/internal/core/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
)

const (
	defaultMaxHours     = 24
	defaultSafetyMargin = 60 * time.Second
)

var tracer = otel.Tracer("github.com/playground-analytics/aggview/internal/aggregation")

// ActivitySource is the read side of the raw activity log used by the engine.
type ActivitySource interface {
	MinCreatedTS(ctx context.Context) (int64, bool, error)
	RetrieveActivityRange(ctx context.Context, startTS, endTS int64) ([]*v1.ActivityEvent, error)
}

// JobOptions bounds one invocation.
type JobOptions struct {
	// MaxHours caps the hour buckets aggregated per invocation.
	MaxHours int
	// SafetyMargin delays aggregating an hour until this long after it ended.
	SafetyMargin time.Duration
	// PartitionKey is forced onto every record written.
	PartitionKey string
	// Disabled turns RunOnce into a logged no-op.
	Disabled bool
}

// DefaultJobOptions returns 24 hours per run, a 60s margin and partition "1".
func DefaultJobOptions() JobOptions {
	return JobOptions{
		MaxHours:     defaultMaxHours,
		SafetyMargin: defaultSafetyMargin,
		PartitionKey: coreagg.DefaultPartitionKey,
	}
}

func (o JobOptions) normalized() JobOptions {
	n := o
	if n.MaxHours <= 0 {
		n.MaxHours = defaultMaxHours
	}
	if n.SafetyMargin < 0 {
		n.SafetyMargin = defaultSafetyMargin
	}
	if n.PartitionKey == "" {
		n.PartitionKey = coreagg.DefaultPartitionKey
	}
	return n
}

// RunStatus is the outcome of one invocation.
type RunStatus string

const (
	StatusDisabled   RunStatus = "disabled"
	StatusNoActivity RunStatus = "no_activity"
	StatusUpToDate   RunStatus = "up_to_date"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// RunResult is what one invocation did. On error its status is StatusFailed and the
// counters describe the work committed before the failure.
type RunResult struct {
	Status         RunStatus `json:"status"`
	HoursProcessed int       `json:"hours_processed"`
	DaysRolledUp   int       `json:"days_rolled_up"`
	RecordsWritten int       `json:"records_written"`
	FirstHour      string    `json:"first_hour,omitempty"`
	LastCoveredTS  int64     `json:"last_covered_ts,omitempty"`
}

// Job is the catch-up driver. It holds no progress between runs: every RunOnce
// re-derives its starting hour from the stores.
type Job struct {
	activity   ActivitySource
	aggregates storage.AggregateStore
	opts       JobOptions
	metrics    *Metrics
	nowFn      func() time.Time
	flight     singleflight.Group
}

// NewJob creates a job. Either store may be nil, in which case aggregation is disabled.
func NewJob(activity ActivitySource, aggregates storage.AggregateStore, opts JobOptions) *Job {
	return &Job{
		activity:   activity,
		aggregates: aggregates,
		opts:       opts.normalized(),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// SetMetrics attaches Prometheus instruments; nil detaches them.
func (j *Job) SetMetrics(m *Metrics) {
	j.metrics = m
}

// Trigger runs RunOnce unless a run is already in flight in this process, in which
// case it waits for and shares that run's result. shared reports the latter.
// Separate processes are not coordinated.
//
// The run does not inherit ctx's cancellation: an hour is never left half written
// because the caller went away, and callers joining the run are not bound to the
// first caller's deadline. Values (trace span, logger) still flow through.
func (j *Job) Trigger(ctx context.Context) (RunResult, bool, error) {
	runCtx := context.WithoutCancel(ctx)
	v, err, shared := j.flight.Do("run", func() (interface{}, error) {
		return j.RunOnce(runCtx)
	})
	res, _ := v.(RunResult)
	return res, shared, err
}

// RunOnce aggregates every complete hour since the cursor, up to MaxHours, rolling
// up a day after each T23 hour. A store error aborts the rest of the run; records
// already written stay and the next run resumes after them.
func (j *Job) RunOnce(ctx context.Context) (RunResult, error) {
	if j.opts.Disabled || j.activity == nil || j.aggregates == nil {
		slog.Info("[Aggregator] Aborting run; activity aggregation is disabled")
		res := RunResult{Status: StatusDisabled}
		j.metrics.observe(res, 0, nil)
		return res, nil
	}

	ctx, span := tracer.Start(ctx, "aggregation.run")
	defer span.End()

	started := time.Now()
	result, err := j.run(ctx)
	if err != nil {
		result.Status = StatusFailed
	}
	j.metrics.observe(result, time.Since(started), err)
	span.SetAttributes(
		attribute.String("status", string(result.Status)),
		attribute.Int("hours_processed", result.HoursProcessed),
		attribute.Int("records_written", result.RecordsWritten),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

func (j *Job) run(ctx context.Context) (RunResult, error) {
	startTS, ok, err := ResolveCursor(ctx, j.activity, j.aggregates)
	if err != nil {
		slog.Error("[Aggregator] Failed to resolve cursor", "error", err)
		return RunResult{}, err
	}
	if !ok {
		slog.Info("[Aggregator] Aborting run; no activity recorded yet")
		return RunResult{Status: StatusNoActivity}, nil
	}

	nowTS := j.nowFn().Unix()
	margin := int64(j.opts.SafetyMargin / time.Second)
	if startTS+coreagg.HourSeconds+margin >= nowTS {
		slog.Info("[Aggregator] Aborting run; aggregated data is up to date",
			"next_hour", coreagg.FormatHour(startTS),
		)
		return RunResult{Status: StatusUpToDate}, nil
	}

	result := RunResult{Status: StatusCompleted, FirstHour: coreagg.FormatHour(startTS)}

	slog.Info("[Aggregator] Starting catch-up",
		"from_hour", result.FirstHour,
		"max_hours", j.opts.MaxHours,
	)

	for startTS+coreagg.HourSeconds < nowTS && result.HoursProcessed < j.opts.MaxHours {
		hour, err := AggregateHour(ctx, j.activity, j.aggregates, startTS, j.opts.PartitionKey)
		result.RecordsWritten += hour.Records
		if err != nil {
			slog.Error("[Aggregator] Hour aggregation failed",
				"date_hr", hour.DateHr,
				"hours_processed", result.HoursProcessed,
				"error", err,
			)
			return result, err
		}

		slog.Debug("[Aggregator] Aggregated hour",
			"date_hr", hour.DateHr,
			"events", hour.Events,
			"records", hour.Records,
			"empty", hour.Sentinel,
		)

		if coreagg.IsLastHourOfDay(hour.DateHr) {
			day, err := RollupDay(ctx, j.aggregates, hour.DateHr, hour.StartTS, j.opts.PartitionKey)
			result.RecordsWritten += day.Records
			if err != nil {
				slog.Error("[Aggregator] Daily rollup failed",
					"date", day.Date,
					"hours_processed", result.HoursProcessed,
					"error", err,
				)
				return result, err
			}
			result.DaysRolledUp++

			slog.Info("[Aggregator] Rolled up day",
				"date", day.Date,
				"hour_records", day.HourRecords,
				"records", day.Records,
				"empty", day.Sentinel,
			)
		}

		startTS += coreagg.HourSeconds
		result.HoursProcessed++
		result.LastCoveredTS = startTS
	}

	slog.Info("[Aggregator] Catch-up complete",
		"hours_processed", result.HoursProcessed,
		"days_rolled_up", result.DaysRolledUp,
		"records_written", result.RecordsWritten,
		"last_covered_ts", result.LastCoveredTS,
	)
	return result, nil
}
