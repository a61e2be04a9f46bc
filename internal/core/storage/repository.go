package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/aevon-lab/footprint/internal/api/v1"
)

// ErrDuplicate is returned when a usage report with the same ID already exists.
var ErrDuplicate = errors.New("usage report already exists")

// ReportStore persists device usage reports so the host provider can serve them.
type ReportStore interface {
	// SaveReport stores the report and all of its records atomically.
	// Returns ErrDuplicate when report.ID was already stored.
	SaveReport(ctx context.Context, report *v1.UsageReport) error
}

// SettingsRequest is one pending request to open a host settings screen.
type SettingsRequest struct {
	ID          string     `json:"id"`
	Target      string     `json:"target"`
	RequestedAt time.Time  `json:"requested_at"`
	HandledAt   *time.Time `json:"handled_at,omitempty"`
}

// PermissionStore holds the host-side usage access grant and the queue of
// settings navigation requests waiting for the user.
type PermissionStore interface {
	// SetUsagePermission records the user's decision and marks every pending
	// settings request as handled.
	SetUsagePermission(ctx context.Context, granted bool) error

	// PendingSettingsRequests lists unhandled requests, oldest first.
	PendingSettingsRequests(ctx context.Context) ([]SettingsRequest, error)
}
