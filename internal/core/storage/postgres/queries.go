package postgres

// SQL for usage report storage and the host permission state.

const (
	// querySaveReport inserts the report envelope.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	querySaveReport = `
		INSERT INTO usage_reports (id, granularity, received_at, record_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
		RETURNING id
	`

	queryInsertRecord = `
		INSERT INTO usage_records (
			report_id, package, foreground_ms,
			interval_start, interval_end, granularity
		)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// queryUsageRecords returns every bucket overlapping [$2, $3) in ingest order.
	// Zero-length buckets match when they lie in [$2, $3). An inverted window
	// matches nothing.
	queryUsageRecords = `
		SELECT package, foreground_ms, interval_start, interval_end
		FROM usage_records
		WHERE granularity = $1
		  AND (interval_end > $2 OR interval_start = $2)
		  AND interval_start < $3
		ORDER BY seq ASC
	`

	queryReadPermission = `SELECT granted FROM usage_permission WHERE id = 1`

	queryUpsertPermission = `
		INSERT INTO usage_permission (id, granted, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE
		SET granted = EXCLUDED.granted, updated_at = EXCLUDED.updated_at
	`

	queryInsertSettingsRequest = `
		INSERT INTO settings_requests (id, target, requested_at)
		VALUES ($1, $2, $3)
	`

	queryMarkSettingsHandled = `
		UPDATE settings_requests
		SET handled_at = $1
		WHERE handled_at IS NULL
	`

	queryPendingSettingsRequests = `
		SELECT id, target, requested_at
		FROM settings_requests
		WHERE handled_at IS NULL
		ORDER BY requested_at ASC
	`
)
