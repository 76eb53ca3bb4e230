package postgres

// SQL queries for the raw activity log and the aggregate table.

const (
	// querySaveActivity appends one raw activity event.
	// RETURNING id gives the caller the store-assigned identity.
	querySaveActivity = `
		INSERT INTO activity_events (
			tag, plaything_name, plaything_part, specification_id,
			session_id, created_ts
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	// queryMinCreatedTS bootstraps the cursor when no aggregate exists yet.
	queryMinCreatedTS = `SELECT MIN(created_ts) FROM activity_events`

	// queryRetrieveActivityRange fetches one half-open [start, end) window.
	queryRetrieveActivityRange = `
		SELECT
			id, tag, plaything_name, plaything_part, specification_id,
			session_id, created_ts
		FROM activity_events
		WHERE created_ts >= $1
		  AND created_ts < $2
		ORDER BY created_ts ASC, id ASC
	`

	// queryListActivity is queryRetrieveActivityRange capped at $3 rows.
	queryListActivity = `
		SELECT
			id, tag, plaything_name, plaything_part, specification_id,
			session_id, created_ts
		FROM activity_events
		WHERE created_ts >= $1
		  AND created_ts < $2
		ORDER BY created_ts ASC, id ASC
		LIMIT $3
	`

	// queryMaxDateHr is the high-water mark of hour records.
	// Day records carry a NULL date_hr and never contribute.
	queryMaxDateHr = `SELECT MAX(date_hr) FROM activity_aggregates`

	// queryHoursByDate returns all hour records of one day by label prefix.
	queryHoursByDate = `
		SELECT
			id, tag, plaything_name, plaything_part, specification_id,
			date_hr, start_ts, "count", sessions, partition_key
		FROM activity_aggregates
		WHERE date_hr LIKE $1
		ORDER BY date_hr ASC
	`

	// queryInsertHour and queryInsertDay are plain inserts. There is no
	// ON CONFLICT clause: re-aggregating an hour writes duplicate rows.
	queryInsertHour = `
		INSERT INTO activity_aggregates (
			id, partition_key, tag, plaything_name, plaything_part, specification_id,
			date_hr, start_ts, "count", sessions
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	queryInsertDay = `
		INSERT INTO activity_aggregates (
			id, partition_key, tag, plaything_name, plaything_part, specification_id,
			"date", start_ts, "count", sessions
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	// queryDistinctValuesTemplate takes a whitelisted facet column name.
	queryDistinctValuesTemplate = `SELECT DISTINCT %s FROM activity_aggregates ORDER BY %s ASC`

	// queryDistinctValuesForPlaythingTemplate narrows the above to one plaything_name.
	queryDistinctValuesForPlaythingTemplate = `SELECT DISTINCT %s FROM activity_aggregates WHERE plaything_name = $1 ORDER BY %s ASC`
)
