package projection

import (
	"sort"

	"github.com/playground-analytics/aggview/internal/core/storage"
	"github.com/shopspring/decimal"
)

type slotKey struct {
	period string
	facet  string
}

// rollupPeriods sums aggregate rows per period slot (and facet value, when faceting).
// Rows for the same slot come from different facet tuples or from duplicate writes;
// both are added. Output is ordered by period label, then facet value.
func rollupPeriods(rows []storage.PeriodRow, metric string) []AggregateValue {
	slots := make(map[slotKey]*AggregateValue)
	for _, row := range rows {
		key := slotKey{period: row.Period, facet: row.FacetValue}
		v, ok := slots[key]
		if !ok {
			v = &AggregateValue{Period: row.Period, FacetValue: row.FacetValue}
			slots[key] = v
		}
		v.Count += row.Count
		v.Sessions += row.Sessions
	}

	values := make([]AggregateValue, 0, len(slots))
	for _, v := range slots {
		v.Value = v.Count
		if metric == MetricSessions {
			v.Value = v.Sessions
		}
		v.EventsPerSession = eventsPerSession(v.Count, v.Sessions)
		values = append(values, *v)
	}

	sort.Slice(values, func(i, j int) bool {
		if values[i].Period != values[j].Period {
			return values[i].Period < values[j].Period
		}
		return values[i].FacetValue < values[j].FacetValue
	})
	return values
}

func eventsPerSession(count, sessions int64) *decimal.Decimal {
	if sessions <= 0 {
		return nil
	}
	ratio := decimal.NewFromInt(count).DivRound(decimal.NewFromInt(sessions), 2)
	return &ratio
}
