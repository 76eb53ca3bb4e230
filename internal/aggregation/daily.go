package aggregation

import (
	"context"
	"fmt"

	coreagg "github.com/playground-analytics/aggview/internal/core/aggregation"
	"github.com/playground-analytics/aggview/internal/core/storage"
	"go.opentelemetry.io/otel/attribute"
)

// DayResult summarizes one daily rollup.
type DayResult struct {
	Date        string
	StartTS     int64
	HourRecords int
	Records     int
	Sentinel    bool
}

// RollupDay sums the persisted hour records of the day ending with the given T23
// hour into day records. Raw events are not read again.
//
// A day whose hour records are all "no activity" markers gets one all-"-" day record
// with zero counts. Otherwise the markers are dropped and one record is written per
// remaining facet tuple.
func RollupDay(
	ctx context.Context,
	aggregates storage.AggregateStore,
	lastHourLabel string,
	lastHourStartTS int64,
	partitionKey string,
) (DayResult, error) {
	date := coreagg.DateOf(lastHourLabel)
	ctx, span := tracer.Start(ctx, "aggregation.day")
	defer span.End()
	span.SetAttributes(attribute.String("date", date))

	result := DayResult{Date: date, StartTS: coreagg.DayStartForLastHour(lastHourStartTS)}

	hours, err := aggregates.QueryHoursByDate(ctx, date)
	if err != nil {
		return result, fmt.Errorf("query hour records for %s: %w", date, err)
	}
	result.HourRecords = len(hours)

	grouping := coreagg.NewDayGrouping()
	for _, h := range hours {
		if h.IsNoActivity() {
			continue
		}
		grouping.Add(h)
	}

	if grouping.Len() == 0 {
		rec := coreagg.NewSentinelDay(date, result.StartTS, partitionKey)
		if err := aggregates.InsertDay(ctx, &rec); err != nil {
			return result, fmt.Errorf("write empty day %s: %w", date, err)
		}
		result.Records = 1
		result.Sentinel = true
		return result, nil
	}

	for _, total := range grouping.Totals() {
		rec := coreagg.DayAggregate{
			FacetTuple:   total.Facets,
			Date:         date,
			StartTS:      result.StartTS,
			Count:        total.Count,
			Sessions:     total.Sessions,
			PartitionKey: partitionKey,
		}
		if err := aggregates.InsertDay(ctx, &rec); err != nil {
			return result, fmt.Errorf("write day %s (%d of %d records written): %w",
				date, result.Records, grouping.Len(), err)
		}
		result.Records++
	}

	span.SetAttributes(attribute.Int("hour_records", result.HourRecords), attribute.Int("records", result.Records))
	return result, nil
}
