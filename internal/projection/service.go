package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	coreagg "github.com/playground-analytics/aggview/internal/core/aggregation"
	"github.com/playground-analytics/aggview/internal/core/storage"
)

const (
	// Ranges spanning fewer days than this read hour records; longer ones read day records.
	hourPeriodMaxDays = 5
	maxRangeDays      = 366
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid aggregate query")

// Service implements the read side over the aggregate store.
// It never touches the raw activity log.
type Service struct {
	reader storage.AggregateReader
}

// NewService creates a new projection service.
func NewService(reader storage.AggregateReader) *Service {
	return &Service{reader: reader}
}

// QueryAggregates sums aggregate records in [start, end+1d) per period slot.
func (s *Service) QueryAggregates(ctx context.Context, req AggregateQueryRequest) (*AggregateQueryResponse, error) {
	req, filter, err := s.normalizeAndValidate(req)
	if err != nil {
		return nil, err
	}

	rows, err := s.reader.QueryPeriods(ctx, filter)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidField) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		return nil, fmt.Errorf("query aggregate periods: %w", err)
	}

	slog.Debug("[Projection] Aggregate query",
		"period", filter.Period,
		"start", req.Start,
		"end", req.End,
		"rows", len(rows),
	)

	return &AggregateQueryResponse{
		Start:  req.Start,
		End:    req.End,
		Period: string(filter.Period),
		Metric: req.Metric,
		Facet:  req.Facet,
		Values: rollupPeriods(rows, req.Metric),
	}, nil
}

// DistinctValues lists the values present for one facet field. A non-empty
// playthingName narrows the list to that plaything's records, as the filter
// dropdowns need once a plaything is picked.
func (s *Service) DistinctValues(ctx context.Context, field, playthingName string) ([]string, error) {
	if !storage.ValidFacetField(field) {
		return nil, invalidQueryf("unknown field: %s", field)
	}
	values, err := s.reader.DistinctValues(ctx, field, playthingName)
	if err != nil {
		return nil, fmt.Errorf("query distinct %s: %w", field, err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func (s *Service) normalizeAndValidate(req AggregateQueryRequest) (AggregateQueryRequest, storage.PeriodFilter, error) {
	var filter storage.PeriodFilter

	if req.Metric == "" {
		req.Metric = MetricCount
	}
	if req.Metric != MetricCount && req.Metric != MetricSessions {
		return req, filter, invalidQueryf("invalid metric: %s (must be count or sessions)", req.Metric)
	}

	startTS, err := coreagg.ParseDate(req.Start)
	if err != nil {
		return req, filter, invalidQueryf("invalid start date %q (expected YYYY-MM-DD)", req.Start)
	}
	endTS, err := coreagg.ParseDate(req.End)
	if err != nil {
		return req, filter, invalidQueryf("invalid end date %q (expected YYYY-MM-DD)", req.End)
	}
	if endTS < startTS {
		return req, filter, invalidQueryf("end date must not be before start date")
	}
	days := int((endTS - startTS) / coreagg.DaySeconds)
	if days >= maxRangeDays {
		return req, filter, invalidQueryf("date range too large: %d days (max %d)", days+1, maxRangeDays)
	}

	if req.Facet != "" && !storage.ValidFacetField(req.Facet) {
		return req, filter, invalidQueryf("invalid facet: %s", req.Facet)
	}
	if req.FilterBy != "" {
		if !storage.ValidFacetField(req.FilterBy) {
			return req, filter, invalidQueryf("invalid filter_by: %s", req.FilterBy)
		}
		if req.FilterBy == req.Facet {
			return req, filter, invalidQueryf("facet and filter_by must differ")
		}
		if req.FilterValue == "" {
			return req, filter, invalidQueryf("filter_value is required with filter_by")
		}
	}
	if req.PlaythingName != "" && (req.Facet == "plaything_name" || req.FilterBy == "plaything_name") {
		return req, filter, invalidQueryf("plaything_name is already fixed; choose another facet or filter")
	}

	filter = storage.PeriodFilter{
		Period:        storage.PeriodDay,
		StartTS:       startTS,
		EndTS:         endTS + coreagg.DaySeconds,
		PlaythingName: req.PlaythingName,
		FacetField:    req.Facet,
	}
	if days < hourPeriodMaxDays {
		filter.Period = storage.PeriodHour
	}
	if req.FilterBy != "" {
		filter.FilterField = req.FilterBy
		filter.FilterValue = req.FilterValue
	}

	return req, filter, nil
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
