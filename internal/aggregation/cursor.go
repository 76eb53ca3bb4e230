package aggregation

import (
	"context"
	"fmt"

	coreagg "github.com/playground-analytics/aggview/internal/core/aggregation"
	"github.com/playground-analytics/aggview/internal/core/storage"
)

// ResolveCursor returns the start (epoch seconds) of the first hour that has not been
// aggregated yet. It is derived from durable state only: one hour past the latest
// date_hr written, or the hour containing the earliest raw event when no aggregate
// exists. ok is false when both stores are empty.
func ResolveCursor(ctx context.Context, activity ActivitySource, aggregates storage.AggregateStore) (int64, bool, error) {
	label, ok, err := aggregates.MaxDateHr(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("read aggregate high-water mark: %w", err)
	}
	if ok {
		last, err := coreagg.ParseHour(label)
		if err != nil {
			return 0, false, err
		}
		return last + coreagg.HourSeconds, true, nil
	}

	first, ok, err := activity.MinCreatedTS(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("read earliest activity: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	return coreagg.HourStart(first), true, nil
}
