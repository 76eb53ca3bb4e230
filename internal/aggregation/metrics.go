package aggregation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the catch-up driver's Prometheus instruments.
type Metrics struct {
	runs           *prometheus.CounterVec
	hoursProcessed prometheus.Counter
	daysRolledUp   prometheus.Counter
	recordsWritten prometheus.Counter
	lastCoveredTS  prometheus.Gauge
	runDuration    prometheus.Histogram
}

// NewMetrics creates the instruments and registers them on reg when it is non-nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aggview",
			Subsystem: "aggregation",
			Name:      "runs_total",
			Help:      "Aggregation runs by outcome status (disabled, no_activity, up_to_date, completed, failed).",
		}, []string{"status"}),
		hoursProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aggview",
			Subsystem: "aggregation",
			Name:      "hours_processed_total",
			Help:      "Hour buckets aggregated, empty hours included.",
		}),
		daysRolledUp: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aggview",
			Subsystem: "aggregation",
			Name:      "days_rolled_up_total",
			Help:      "Daily rollups performed.",
		}),
		recordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aggview",
			Subsystem: "aggregation",
			Name:      "records_written_total",
			Help:      "Hour and day aggregate records inserted.",
		}),
		lastCoveredTS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aggview",
			Subsystem: "aggregation",
			Name:      "last_covered_timestamp_seconds",
			Help:      "End (epoch seconds) of the last hour aggregated by this process.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "aggview",
			Subsystem: "aggregation",
			Name:      "run_duration_seconds",
			Help:      "Wall time of aggregation runs that reached the stores.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{
			m.runs, m.hoursProcessed, m.daysRolledUp, m.recordsWritten, m.lastCoveredTS, m.runDuration,
		} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// observe records one run. A nil receiver is a no-op.
func (m *Metrics) observe(res RunResult, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	status := res.Status
	if err != nil {
		status = StatusFailed
	}
	m.runs.WithLabelValues(string(status)).Inc()
	m.hoursProcessed.Add(float64(res.HoursProcessed))
	m.daysRolledUp.Add(float64(res.DaysRolledUp))
	m.recordsWritten.Add(float64(res.RecordsWritten))
	if res.LastCoveredTS > 0 {
		m.lastCoveredTS.Set(float64(res.LastCoveredTS))
	}
	if res.Status != StatusDisabled {
		m.runDuration.Observe(elapsed.Seconds())
	}
}
