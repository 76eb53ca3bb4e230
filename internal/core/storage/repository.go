package storage

import (
	"context"
	"errors"

	v1 "github.com/playground-analytics/aggview/internal/api/v1"
	"github.com/playground-analytics/aggview/internal/core/aggregation"
)

// ErrInvalidField is returned when a query names a column outside the facet whitelist.
var ErrInvalidField = errors.New("invalid aggregate field")

// ActivityStore is the append-only raw activity log.
// The aggregation engine only reads from it; SaveActivity serves the recording path.
type ActivityStore interface {
	SaveActivity(ctx context.Context, event *v1.ActivityEvent) error

	// MinCreatedTS returns the earliest creation timestamp in the whole log.
	// ok is false when the log is empty.
	MinCreatedTS(ctx context.Context) (ts int64, ok bool, err error)

	// RetrieveActivityRange returns every event with startTS <= created_ts < endTS.
	RetrieveActivityRange(ctx context.Context, startTS, endTS int64) ([]*v1.ActivityEvent, error)

	// ListActivity is RetrieveActivityRange returning at most limit events.
	ListActivity(ctx context.Context, startTS, endTS int64, limit int) ([]*v1.ActivityEvent, error)
}

// AggregateStore is the insert-only collection of hour and day aggregates.
type AggregateStore interface {
	// MaxDateHr returns the greatest date_hr label of any hour record.
	// ok is false when no hour record exists yet.
	MaxDateHr(ctx context.Context) (label string, ok bool, err error)

	// QueryHoursByDate returns every hour record whose date_hr starts with date.
	QueryHoursByDate(ctx context.Context, date string) ([]aggregation.HourAggregate, error)

	// InsertHour stores a new hour record and assigns its ID.
	InsertHour(ctx context.Context, rec *aggregation.HourAggregate) error

	// InsertDay stores a new day record and assigns its ID.
	InsertDay(ctx context.Context, rec *aggregation.DayAggregate) error
}

// Period selects which record kind a read query targets.
type Period string

const (
	PeriodHour Period = "date_hr"
	PeriodDay  Period = "date"
)

// FacetFields lists the columns that may be used for faceting and filtering.
var FacetFields = []string{"tag", "plaything_name", "plaything_part", "specification_id"}

// ValidFacetField reports whether name is one of FacetFields.
func ValidFacetField(name string) bool {
	for _, f := range FacetFields {
		if f == name {
			return true
		}
	}
	return false
}

// PeriodFilter scopes a read over aggregate records.
type PeriodFilter struct {
	Period        Period
	StartTS       int64 // inclusive
	EndTS         int64 // exclusive
	PlaythingName string
	FacetField    string // optional; when set PeriodRow.FacetValue carries that column
	FilterField   string // optional
	FilterValue   string
}

// PeriodRow is one aggregate record projected for the read API.
type PeriodRow struct {
	Period     string
	FacetValue string
	Count      int64
	Sessions   int64
}

// AggregateReader serves the aggregate query API.
type AggregateReader interface {
	QueryPeriods(ctx context.Context, filter PeriodFilter) ([]PeriodRow, error)

	// DistinctValues returns the distinct values of one facet column, sorted.
	// A non-empty playthingName restricts it to records of that plaything.
	DistinctValues(ctx context.Context, field, playthingName string) ([]string, error)
}
