// Package memory provides in-process implementations of the storage ports.
// Useful for testing and for running the service without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	v1 "github.com/playground-analytics/aggview/internal/api/v1"
	"github.com/playground-analytics/aggview/internal/core/aggregation"
	"github.com/playground-analytics/aggview/internal/core/storage"
)

// ActivityStore is an in-memory raw activity log.
type ActivityStore struct {
	mu     sync.RWMutex
	nextID int64
	events []v1.ActivityEvent
}

// NewActivityStore creates an empty activity log.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

func (s *ActivityStore) SaveActivity(ctx context.Context, event *v1.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	event.ID = s.nextID
	s.events = append(s.events, *event)
	return nil
}

func (s *ActivityStore) MinCreatedTS(ctx context.Context) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) == 0 {
		return 0, false, nil
	}
	earliest := s.events[0].CreatedTS
	for _, e := range s.events[1:] {
		if e.CreatedTS < earliest {
			earliest = e.CreatedTS
		}
	}
	return earliest, true, nil
}

func (s *ActivityStore) RetrieveActivityRange(ctx context.Context, startTS, endTS int64) ([]*v1.ActivityEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*v1.ActivityEvent
	for _, e := range s.events {
		if e.CreatedTS >= startTS && e.CreatedTS < endTS {
			// Return a copy to prevent external modification
			evt := e
			out = append(out, &evt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedTS < out[j].CreatedTS })
	return out, nil
}

func (s *ActivityStore) ListActivity(ctx context.Context, startTS, endTS int64, limit int) ([]*v1.ActivityEvent, error) {
	events, err := s.RetrieveActivityRange(ctx, startTS, endTS)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// AggregateStore is an in-memory insert-only aggregate table.
type AggregateStore struct {
	mu    sync.RWMutex
	hours []aggregation.HourAggregate
	days  []aggregation.DayAggregate
}

// NewAggregateStore creates an empty aggregate table.
func NewAggregateStore() *AggregateStore {
	return &AggregateStore{}
}

func (s *AggregateStore) MaxDateHr(ctx context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.hours) == 0 {
		return "", false, nil
	}
	latest := s.hours[0].DateHr
	for _, h := range s.hours[1:] {
		if h.DateHr > latest {
			latest = h.DateHr
		}
	}
	return latest, true, nil
}

func (s *AggregateStore) QueryHoursByDate(ctx context.Context, date string) ([]aggregation.HourAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []aggregation.HourAggregate
	for _, h := range s.hours {
		if strings.HasPrefix(h.DateHr, date) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *AggregateStore) InsertHour(ctx context.Context, rec *aggregation.HourAggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.NewString()
	if rec.PartitionKey == "" {
		rec.PartitionKey = aggregation.DefaultPartitionKey
	}
	s.hours = append(s.hours, *rec)
	return nil
}

func (s *AggregateStore) InsertDay(ctx context.Context, rec *aggregation.DayAggregate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.NewString()
	if rec.PartitionKey == "" {
		rec.PartitionKey = aggregation.DefaultPartitionKey
	}
	s.days = append(s.days, *rec)
	return nil
}

// Hours returns a snapshot of every hour record in insertion order.
func (s *AggregateStore) Hours() []aggregation.HourAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]aggregation.HourAggregate(nil), s.hours...)
}

// Days returns a snapshot of every day record in insertion order.
func (s *AggregateStore) Days() []aggregation.DayAggregate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]aggregation.DayAggregate(nil), s.days...)
}

func (s *AggregateStore) QueryPeriods(ctx context.Context, filter storage.PeriodFilter) ([]storage.PeriodRow, error) {
	if filter.FacetField != "" && !storage.ValidFacetField(filter.FacetField) {
		return nil, fmt.Errorf("%w: facet %q", storage.ErrInvalidField, filter.FacetField)
	}
	if filter.FilterField != "" && !storage.ValidFacetField(filter.FilterField) {
		return nil, fmt.Errorf("%w: filter %q", storage.ErrInvalidField, filter.FilterField)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type record struct {
		period   string
		facets   aggregation.FacetTuple
		startTS  int64
		count    int64
		sessions int64
	}

	var records []record
	switch filter.Period {
	case storage.PeriodHour:
		for _, h := range s.hours {
			records = append(records, record{h.DateHr, h.FacetTuple, h.StartTS, h.Count, h.Sessions})
		}
	case storage.PeriodDay:
		for _, d := range s.days {
			records = append(records, record{d.Date, d.FacetTuple, d.StartTS, d.Count, d.Sessions})
		}
	default:
		return nil, fmt.Errorf("%w: period %q", storage.ErrInvalidField, filter.Period)
	}

	var out []storage.PeriodRow
	for _, r := range records {
		if r.startTS < filter.StartTS || r.startTS >= filter.EndTS {
			continue
		}
		if filter.PlaythingName != "" && r.facets.PlaythingName != filter.PlaythingName {
			continue
		}
		if filter.FilterField != "" && facetValue(r.facets, filter.FilterField) != filter.FilterValue {
			continue
		}
		row := storage.PeriodRow{Period: r.period, Count: r.count, Sessions: r.sessions}
		if filter.FacetField != "" {
			row.FacetValue = facetValue(r.facets, filter.FacetField)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *AggregateStore) DistinctValues(ctx context.Context, field, playthingName string) ([]string, error) {
	if !storage.ValidFacetField(field) {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidField, field)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	add := func(f aggregation.FacetTuple) {
		if playthingName != "" && f.PlaythingName != playthingName {
			return
		}
		seen[facetValue(f, field)] = struct{}{}
	}
	for _, h := range s.hours {
		add(h.FacetTuple)
	}
	for _, d := range s.days {
		add(d.FacetTuple)
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func facetValue(f aggregation.FacetTuple, field string) string {
	switch field {
	case "tag":
		return f.Tag
	case "plaything_name":
		return f.PlaythingName
	case "plaything_part":
		return f.PlaythingPart
	case "specification_id":
		return f.SpecificationID
	}
	return ""
}
