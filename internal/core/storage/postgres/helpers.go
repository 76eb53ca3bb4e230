package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	v1 "github.com/playground-analytics/aggview/internal/api/v1"
	"github.com/playground-analytics/aggview/internal/core/aggregation"
	"github.com/playground-analytics/aggview/internal/core/storage"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// nullableString maps an absent facet to SQL NULL.
func nullableString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// scanActivityRow scans a database row into an ActivityEvent.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanActivityRow(row scanner) (*v1.ActivityEvent, error) {
	var evt v1.ActivityEvent
	var tag, name, part, specID sql.NullString

	err := row.Scan(
		&evt.ID,
		&tag,
		&name,
		&part,
		&specID,
		&evt.SessionID,
		&evt.CreatedTS,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan activity row: %w", err)
	}

	evt.Tag = stringPtr(tag)
	evt.PlaythingName = stringPtr(name)
	evt.PlaythingPart = stringPtr(part)
	evt.SpecificationID = stringPtr(specID)
	return &evt, nil
}

// scanHourRow scans one hour aggregate record.
func scanHourRow(row scanner) (aggregation.HourAggregate, error) {
	var h aggregation.HourAggregate
	err := row.Scan(
		&h.ID,
		&h.Tag,
		&h.PlaythingName,
		&h.PlaythingPart,
		&h.SpecificationID,
		&h.DateHr,
		&h.StartTS,
		&h.Count,
		&h.Sessions,
		&h.PartitionKey,
	)
	if err != nil {
		return aggregation.HourAggregate{}, fmt.Errorf("failed to scan hour aggregate row: %w", err)
	}
	return h, nil
}

// buildPeriodQuery renders the read-API query for one filter.
// Column names come from a whitelist; values are always bound parameters.
func buildPeriodQuery(filter storage.PeriodFilter) (string, []interface{}, error) {
	var periodCol string
	switch filter.Period {
	case storage.PeriodHour:
		periodCol = "date_hr"
	case storage.PeriodDay:
		periodCol = `"date"`
	default:
		return "", nil, fmt.Errorf("%w: period %q", storage.ErrInvalidField, filter.Period)
	}

	facetCol := "''"
	if filter.FacetField != "" {
		if !storage.ValidFacetField(filter.FacetField) {
			return "", nil, fmt.Errorf("%w: facet %q", storage.ErrInvalidField, filter.FacetField)
		}
		facetCol = filter.FacetField
	}

	args := []interface{}{filter.StartTS, filter.EndTS}
	where := []string{
		periodCol + " IS NOT NULL",
		"start_ts >= $1",
		"start_ts < $2",
	}
	if filter.PlaythingName != "" {
		args = append(args, filter.PlaythingName)
		where = append(where, fmt.Sprintf("plaything_name = $%d", len(args)))
	}
	if filter.FilterField != "" {
		if !storage.ValidFacetField(filter.FilterField) {
			return "", nil, fmt.Errorf("%w: filter %q", storage.ErrInvalidField, filter.FilterField)
		}
		args = append(args, filter.FilterValue)
		where = append(where, fmt.Sprintf("%s = $%d", filter.FilterField, len(args)))
	}

	query := fmt.Sprintf(
		`SELECT %s, %s, "count", sessions FROM activity_aggregates WHERE %s ORDER BY start_ts ASC`,
		periodCol, facetCol, strings.Join(where, " AND "),
	)
	return query, args, nil
}
