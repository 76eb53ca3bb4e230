package aggregation

import (
	"context"
	"fmt"

	coreagg "github.com/playground-analytics/aggview/internal/core/aggregation"
	"github.com/playground-analytics/aggview/internal/core/storage"
	"go.opentelemetry.io/otel/attribute"
)

// HourResult summarizes one hour bucket.
type HourResult struct {
	DateHr   string
	StartTS  int64
	Events   int
	Records  int
	Sentinel bool
}

// AggregateHour writes the hour records for [startTS, startTS+3600).
//
// An hour without events gets one all-"-" record with zero counts. Otherwise one
// record is written per facet tuple present, with count = events in the group and
// sessions = distinct session_id values in the group. Each insert is independent and
// nothing checks for records already written for this hour.
func AggregateHour(
	ctx context.Context,
	activity ActivitySource,
	aggregates storage.AggregateStore,
	startTS int64,
	partitionKey string,
) (HourResult, error) {
	label := coreagg.FormatHour(startTS)
	ctx, span := tracer.Start(ctx, "aggregation.hour")
	defer span.End()
	span.SetAttributes(attribute.String("date_hr", label))

	result := HourResult{DateHr: label, StartTS: startTS}

	events, err := activity.RetrieveActivityRange(ctx, startTS, startTS+coreagg.HourSeconds)
	if err != nil {
		return result, fmt.Errorf("query activity for %s: %w", label, err)
	}
	result.Events = len(events)

	if len(events) == 0 {
		rec := coreagg.NewSentinelHour(startTS, partitionKey)
		if err := aggregates.InsertHour(ctx, &rec); err != nil {
			return result, fmt.Errorf("write empty hour %s: %w", label, err)
		}
		result.Records = 1
		result.Sentinel = true
		return result, nil
	}

	grouping := coreagg.NewHourGrouping()
	for _, evt := range events {
		facets := coreagg.NormalizeFacets(evt.Tag, evt.PlaythingName, evt.PlaythingPart, evt.SpecificationID)
		grouping.Add(facets, evt.SessionID)
	}

	for _, total := range grouping.Totals() {
		rec := coreagg.HourAggregate{
			FacetTuple:   total.Facets,
			DateHr:       label,
			StartTS:      startTS,
			Count:        total.Count,
			Sessions:     total.Sessions,
			PartitionKey: partitionKey,
		}
		if err := aggregates.InsertHour(ctx, &rec); err != nil {
			return result, fmt.Errorf("write hour %s (%d of %d records written): %w",
				label, result.Records, grouping.Len(), err)
		}
		result.Records++
	}

	span.SetAttributes(attribute.Int("events", result.Events), attribute.Int("records", result.Records))
	return result, nil
}
