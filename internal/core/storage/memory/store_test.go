package memory

import (
	"context"
	"testing"

	v1 "github.com/playground-analytics/aggview/internal/api/v1"
	"github.com/playground-analytics/aggview/internal/core/aggregation"
	"github.com/playground-analytics/aggview/internal/core/storage"
	"github.com/stretchr/testify/require"
)

func TestActivityStore_RangeIsHalfOpen(t *testing.T) {
	ctx := context.Background()
	s := NewActivityStore()

	for _, ts := range []int64{3600, 3599, 7200, 5000} {
		require.NoError(t, s.SaveActivity(ctx, &v1.ActivityEvent{SessionID: "s", CreatedTS: ts}))
	}

	min, ok, err := s.MinCreatedTS(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(3599), min)

	events, err := s.RetrieveActivityRange(ctx, 3600, 7200)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, int64(3600), events[0].CreatedTS)
	require.Equal(t, int64(5000), events[1].CreatedTS)
}

func TestActivityStore_ListActivityAppliesLimit(t *testing.T) {
	ctx := context.Background()
	s := NewActivityStore()

	for _, ts := range []int64{3700, 3600, 3650, 9000} {
		require.NoError(t, s.SaveActivity(ctx, &v1.ActivityEvent{SessionID: "s", CreatedTS: ts}))
	}

	events, err := s.ListActivity(ctx, 3600, 7200, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, int64(3600), events[0].CreatedTS)
	require.Equal(t, int64(3650), events[1].CreatedTS)
}

func TestActivityStore_Empty(t *testing.T) {
	_, ok, err := NewActivityStore().MinCreatedTS(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAggregateStore_MaxDateHrIgnoresDays(t *testing.T) {
	ctx := context.Background()
	s := NewAggregateStore()

	_, ok, err := s.MaxDateHr(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	h1 := aggregation.NewSentinelHour(1704067200, "")
	h2 := aggregation.NewSentinelHour(1704150000, "")
	require.NoError(t, s.InsertHour(ctx, &h2))
	require.NoError(t, s.InsertHour(ctx, &h1))
	d := aggregation.NewSentinelDay("2024-01-02", 1704153600, "")
	require.NoError(t, s.InsertDay(ctx, &d))

	label, ok, err := s.MaxDateHr(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2024-01-01T23", label)

	require.NotEmpty(t, h1.ID)
	require.NotEqual(t, h1.ID, h2.ID)
	require.Equal(t, aggregation.DefaultPartitionKey, s.Hours()[0].PartitionKey)
}

func TestAggregateStore_QueryPeriodsAndDistinct(t *testing.T) {
	ctx := context.Background()
	s := NewAggregateStore()

	rec := aggregation.HourAggregate{
		FacetTuple: aggregation.FacetTuple{Tag: "t1", PlaythingName: "p1", PlaythingPart: "part1", SpecificationID: "spec1"},
		DateHr:     "2024-01-01T05",
		StartTS:    1704085200,
		Count:      3,
		Sessions:   2,
	}
	require.NoError(t, s.InsertHour(ctx, &rec))
	sentinel := aggregation.NewSentinelHour(1704088800, "")
	require.NoError(t, s.InsertHour(ctx, &sentinel))

	rows, err := s.QueryPeriods(ctx, storage.PeriodFilter{
		Period:     storage.PeriodHour,
		StartTS:    1704067200,
		EndTS:      1704153600,
		FacetField: "tag",
	})
	require.NoError(t, err)
	require.Equal(t, []storage.PeriodRow{
		{Period: "2024-01-01T05", FacetValue: "t1", Count: 3, Sessions: 2},
		{Period: "2024-01-01T06", FacetValue: "-"},
	}, rows)

	rows, err = s.QueryPeriods(ctx, storage.PeriodFilter{
		Period:        storage.PeriodHour,
		StartTS:       1704067200,
		EndTS:         1704153600,
		PlaythingName: "p1",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = s.QueryPeriods(ctx, storage.PeriodFilter{Period: storage.PeriodHour, FacetField: "session_id"})
	require.ErrorIs(t, err, storage.ErrInvalidField)

	values, err := s.DistinctValues(ctx, "plaything_name", "")
	require.NoError(t, err)
	require.Equal(t, []string{"-", "p1"}, values)

	values, err = s.DistinctValues(ctx, "tag", "p1")
	require.NoError(t, err)
	require.Equal(t, []string{"t1"}, values)

	values, err = s.DistinctValues(ctx, "tag", "nope")
	require.NoError(t, err)
	require.Empty(t, values)
}
