package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/playground-analytics/aggview/internal/core/aggregation"
	"github.com/playground-analytics/aggview/internal/core/storage"
)

// AggregateAdapter implements storage.AggregateStore and storage.AggregateReader
// on the shared activity_aggregates table.
//
// Every insert is its own statement. There is no transaction around the records
// of one hour or one day; an interrupted run can leave a partial set behind.
type AggregateAdapter struct {
	db    *sql.DB
	newID func() string
}

// NewAggregateAdapter creates a new AggregateAdapter sharing the given connection.
func NewAggregateAdapter(db *sql.DB) *AggregateAdapter {
	return &AggregateAdapter{db: db, newID: uuid.NewString}
}

// MaxDateHr returns the latest hour label written; ok is false for an empty table.
func (a *AggregateAdapter) MaxDateHr(ctx context.Context) (string, bool, error) {
	var label sql.NullString
	if err := a.db.QueryRowContext(ctx, queryMaxDateHr).Scan(&label); err != nil {
		return "", false, fmt.Errorf("failed to query max date_hr: %w", err)
	}
	return label.String, label.Valid, nil
}

// QueryHoursByDate returns every hour record of the given UTC date.
func (a *AggregateAdapter) QueryHoursByDate(ctx context.Context, date string) ([]aggregation.HourAggregate, error) {
	rows, err := a.db.QueryContext(ctx, queryHoursByDate, date+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query hour aggregates: %w", err)
	}
	defer rows.Close()

	var hours []aggregation.HourAggregate
	for rows.Next() {
		h, err := scanHourRow(rows)
		if err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hour aggregates: %w", err)
	}
	return hours, nil
}

// InsertHour writes one hour record with a generated ID.
func (a *AggregateAdapter) InsertHour(ctx context.Context, rec *aggregation.HourAggregate) error {
	rec.ID = a.newID()
	if rec.PartitionKey == "" {
		rec.PartitionKey = aggregation.DefaultPartitionKey
	}

	_, err := a.db.ExecContext(ctx, queryInsertHour,
		rec.ID,
		rec.PartitionKey,
		rec.Tag,
		rec.PlaythingName,
		rec.PlaythingPart,
		rec.SpecificationID,
		rec.DateHr,
		rec.StartTS,
		rec.Count,
		rec.Sessions,
	)
	if err != nil {
		return fmt.Errorf("failed to insert hour aggregate %s: %w", rec.DateHr, err)
	}

	slog.Debug("[Postgres] Inserted hour aggregate", "id", rec.ID, "date_hr", rec.DateHr, "count", rec.Count)
	return nil
}

// InsertDay writes one day record with a generated ID.
func (a *AggregateAdapter) InsertDay(ctx context.Context, rec *aggregation.DayAggregate) error {
	rec.ID = a.newID()
	if rec.PartitionKey == "" {
		rec.PartitionKey = aggregation.DefaultPartitionKey
	}

	_, err := a.db.ExecContext(ctx, queryInsertDay,
		rec.ID,
		rec.PartitionKey,
		rec.Tag,
		rec.PlaythingName,
		rec.PlaythingPart,
		rec.SpecificationID,
		rec.Date,
		rec.StartTS,
		rec.Count,
		rec.Sessions,
	)
	if err != nil {
		return fmt.Errorf("failed to insert day aggregate %s: %w", rec.Date, err)
	}

	slog.Debug("[Postgres] Inserted day aggregate", "id", rec.ID, "date", rec.Date, "count", rec.Count)
	return nil
}

// QueryPeriods projects aggregate records for the read API.
func (a *AggregateAdapter) QueryPeriods(ctx context.Context, filter storage.PeriodFilter) ([]storage.PeriodRow, error) {
	query, args, err := buildPeriodQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregate periods: %w", err)
	}
	defer rows.Close()

	var out []storage.PeriodRow
	for rows.Next() {
		var r storage.PeriodRow
		if err := rows.Scan(&r.Period, &r.FacetValue, &r.Count, &r.Sessions); err != nil {
			return nil, fmt.Errorf("failed to scan aggregate period row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating aggregate periods: %w", err)
	}
	return out, nil
}

// DistinctValues returns the sorted distinct values of one facet column,
// optionally only for records of one plaything_name.
func (a *AggregateAdapter) DistinctValues(ctx context.Context, field, playthingName string) ([]string, error) {
	if !storage.ValidFacetField(field) {
		return nil, fmt.Errorf("%w: %q", storage.ErrInvalidField, field)
	}

	query := fmt.Sprintf(queryDistinctValuesTemplate, field, field)
	var args []interface{}
	if playthingName != "" {
		query = fmt.Sprintf(queryDistinctValuesForPlaythingTemplate, field, field)
		args = append(args, playthingName)
	}

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s: %w", field, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan distinct %s: %w", field, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating distinct %s: %w", field, err)
	}
	return values, nil
}
