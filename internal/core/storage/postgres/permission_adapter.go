package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aevon-lab/footprint/internal/core/storage"
	"github.com/aevon-lab/footprint/internal/host"
)

// PermissionAdapter stores the usage access grant and settings navigation
// requests. It implements host.Authorizer, host.Navigator and
// storage.PermissionStore.
type PermissionAdapter struct {
	db             *sql.DB
	defaultGranted bool
	nowFn          func() time.Time
}

// NewPermissionAdapter creates a PermissionAdapter sharing the given connection.
// defaultGranted answers permission checks until a decision is recorded.
func NewPermissionAdapter(db *sql.DB, defaultGranted bool) *PermissionAdapter {
	return &PermissionAdapter{
		db:             db,
		defaultGranted: defaultGranted,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// CheckUsagePermission reads the recorded grant.
func (a *PermissionAdapter) CheckUsagePermission(ctx context.Context) (host.Grant, error) {
	granted := a.defaultGranted
	err := a.db.QueryRowContext(ctx, queryReadPermission).Scan(&granted)
	if err != nil && err != sql.ErrNoRows {
		return host.GrantDenied, fmt.Errorf("read usage permission: %w", err)
	}
	if granted {
		return host.GrantGranted, nil
	}
	return host.GrantDenied, nil
}

// OpenSettingsScreen queues a navigation request for the device.
func (a *PermissionAdapter) OpenSettingsScreen(ctx context.Context, target string) error {
	id := uuid.NewString()
	if _, err := a.db.ExecContext(ctx, queryInsertSettingsRequest, id, target, a.nowFn()); err != nil {
		return fmt.Errorf("queue settings request: %w", err)
	}
	slog.Info("[PermissionAdapter] Settings navigation requested", "request_id", id, "target", target)
	return nil
}

// SetUsagePermission records the decision and closes pending settings
// requests in one transaction.
func (a *PermissionAdapter) SetUsagePermission(ctx context.Context, granted bool) error {
	now := a.nowFn()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("set usage permission: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, queryUpsertPermission, granted, now); err != nil {
		return fmt.Errorf("set usage permission: upsert: %w", err)
	}

	result, err := tx.ExecContext(ctx, queryMarkSettingsHandled, now)
	if err != nil {
		return fmt.Errorf("set usage permission: close settings requests: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("set usage permission: commit: %w", err)
	}

	handled, _ := result.RowsAffected()
	slog.Info("[PermissionAdapter] Usage permission updated", "granted", granted, "requests_handled", handled)
	return nil
}

// PendingSettingsRequests lists unhandled settings requests, oldest first.
func (a *PermissionAdapter) PendingSettingsRequests(ctx context.Context) ([]storage.SettingsRequest, error) {
	rows, err := a.db.QueryContext(ctx, queryPendingSettingsRequests)
	if err != nil {
		return nil, fmt.Errorf("pending settings requests: %w", err)
	}
	defer rows.Close()

	requests := make([]storage.SettingsRequest, 0)
	for rows.Next() {
		var req storage.SettingsRequest
		if err := rows.Scan(&req.ID, &req.Target, &req.RequestedAt); err != nil {
			return nil, fmt.Errorf("pending settings requests: scan row: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pending settings requests: iterate rows: %w", err)
	}

	return requests, nil
}
