package aggregation

import "sort"

// FacetTotal is the summed counters of one facet tuple.
type FacetTotal struct {
	Facets   FacetTuple
	Count    int64
	Sessions int64
}

// HourGrouping accumulates raw events of one hour bucket by facet tuple.
// Built by a single pass over the queried events.
type HourGrouping struct {
	groups map[FacetTuple]*hourCounter
}

type hourCounter struct {
	count    int64
	sessions map[string]struct{}
}

// NewHourGrouping returns an empty grouping.
func NewHourGrouping() *HourGrouping {
	return &HourGrouping{groups: make(map[FacetTuple]*hourCounter)}
}

// Add folds one event into its group. facets must already be normalized.
func (g *HourGrouping) Add(facets FacetTuple, sessionID string) {
	c, ok := g.groups[facets]
	if !ok {
		c = &hourCounter{sessions: make(map[string]struct{})}
		g.groups[facets] = c
	}
	c.count++
	c.sessions[sessionID] = struct{}{}
}

// Len returns the number of distinct facet tuples seen.
func (g *HourGrouping) Len() int {
	return len(g.groups)
}

// Totals returns one entry per facet tuple, ordered by tuple.
func (g *HourGrouping) Totals() []FacetTotal {
	out := make([]FacetTotal, 0, len(g.groups))
	for facets, c := range g.groups {
		out = append(out, FacetTotal{
			Facets:   facets,
			Count:    c.count,
			Sessions: int64(len(c.sessions)),
		})
	}
	sortTotals(out)
	return out
}

// DayGrouping sums hour records of one day by facet tuple.
type DayGrouping struct {
	totals map[FacetTuple]*FacetTotal
}

// NewDayGrouping returns an empty grouping.
func NewDayGrouping() *DayGrouping {
	return &DayGrouping{totals: make(map[FacetTuple]*FacetTotal)}
}

// Add sums one hour record into its group.
func (g *DayGrouping) Add(h HourAggregate) {
	t, ok := g.totals[h.FacetTuple]
	if !ok {
		t = &FacetTotal{Facets: h.FacetTuple}
		g.totals[h.FacetTuple] = t
	}
	t.Count += h.Count
	t.Sessions += h.Sessions
}

// Len returns the number of distinct facet tuples seen.
func (g *DayGrouping) Len() int {
	return len(g.totals)
}

// Totals returns one entry per facet tuple, ordered by tuple.
func (g *DayGrouping) Totals() []FacetTotal {
	out := make([]FacetTotal, 0, len(g.totals))
	for _, t := range g.totals {
		out = append(out, *t)
	}
	sortTotals(out)
	return out
}

func sortTotals(totals []FacetTotal) {
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Facets.Less(totals[j].Facets)
	})
}
