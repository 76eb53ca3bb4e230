package projection

import (
	"testing"

	"github.com/playground-analytics/aggview/internal/core/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollupPeriods_SumsPerPeriod(t *testing.T) {
	rows := []storage.PeriodRow{
		{Period: "2024-01-01T06", Count: 1, Sessions: 1},
		{Period: "2024-01-01T05", Count: 3, Sessions: 3},
		{Period: "2024-01-01T05", Count: 2, Sessions: 2},
		{Period: "2024-01-01T07", Count: 0, Sessions: 0},
	}

	values := rollupPeriods(rows, MetricCount)
	require.Len(t, values, 3)

	assert.Equal(t, "2024-01-01T05", values[0].Period)
	assert.Equal(t, int64(5), values[0].Value)
	assert.Equal(t, int64(5), values[0].Count)
	assert.Equal(t, int64(5), values[0].Sessions)
	require.NotNil(t, values[0].EventsPerSession)
	assert.True(t, decimal.NewFromInt(1).Equal(*values[0].EventsPerSession))

	assert.Equal(t, "2024-01-01T06", values[1].Period)

	// Empty-hour records show up as zero slots.
	assert.Equal(t, "2024-01-01T07", values[2].Period)
	assert.Zero(t, values[2].Value)
	assert.Nil(t, values[2].EventsPerSession)
}

func TestRollupPeriods_FacetedSessions(t *testing.T) {
	rows := []storage.PeriodRow{
		{Period: "2024-01-01", FacetValue: "robot", Count: 9, Sessions: 4},
		{Period: "2024-01-01", FacetValue: "kite", Count: 1, Sessions: 1},
		{Period: "2024-01-01", FacetValue: "robot", Count: 3, Sessions: 2},
	}

	values := rollupPeriods(rows, MetricSessions)
	require.Len(t, values, 2)

	assert.Equal(t, "kite", values[0].FacetValue)
	assert.Equal(t, int64(1), values[0].Value)

	assert.Equal(t, "robot", values[1].FacetValue)
	assert.Equal(t, int64(6), values[1].Value)
	assert.Equal(t, int64(12), values[1].Count)
	require.NotNil(t, values[1].EventsPerSession)
	assert.True(t, decimal.NewFromInt(2).Equal(*values[1].EventsPerSession))
}

func TestEventsPerSession_Rounding(t *testing.T) {
	got := eventsPerSession(10, 3)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("3.33").Equal(*got))

	assert.Nil(t, eventsPerSession(5, 0))
}
