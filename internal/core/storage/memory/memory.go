// Package memory holds in-memory implementations of the host collaborators
// and the report store. Used by the CLI and by tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	v1 "github.com/aevon-lab/footprint/internal/api/v1"
	"github.com/aevon-lab/footprint/internal/core/storage"
	"github.com/aevon-lab/footprint/internal/core/usage"
	"github.com/aevon-lab/footprint/internal/host"
)

type storedRecord struct {
	granularity host.Granularity
	record      usage.Record
}

// Store is an in-memory usage provider, report store and permission authority.
type Store struct {
	mu       sync.RWMutex
	records  []storedRecord
	reports  map[string]struct{}
	granted  bool
	requests []storage.SettingsRequest
	nowFn    func() time.Time
}

// NewStore creates an empty store with the given initial permission state.
func NewStore(granted bool) *Store {
	return &Store{
		reports: make(map[string]struct{}),
		granted: granted,
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// AddRecords appends records reported at the given granularity.
func (s *Store) AddRecords(granularity host.Granularity, records ...usage.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		s.records = append(s.records, storedRecord{granularity: granularity, record: rec})
	}
}

// SaveReport stores the records of a report. Returns storage.ErrDuplicate on a repeated ID.
func (s *Store) SaveReport(_ context.Context, report *v1.UsageReport) error {
	granularity, err := host.ParseGranularity(report.Granularity)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[report.ID]; exists {
		return storage.ErrDuplicate
	}
	s.reports[report.ID] = struct{}{}

	for _, rec := range report.UsageRecords() {
		s.records = append(s.records, storedRecord{granularity: granularity, record: rec})
	}
	return nil
}

// QueryUsageRecords returns records of the granularity overlapping [start, end),
// in insertion order. A zero-length record matches when it lies in [start, end).
// Returns nil when nothing matches.
func (s *Store) QueryUsageRecords(_ context.Context, granularity host.Granularity, start, end time.Time) ([]usage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []usage.Record
	for _, sr := range s.records {
		if sr.granularity != granularity {
			continue
		}
		r := sr.record
		if (r.IntervalEnd.After(start) || r.IntervalStart.Equal(start)) && r.IntervalStart.Before(end) {
			out = append(out, sr.record)
		}
	}
	return out, nil
}

// CheckUsagePermission implements host.Authorizer.
func (s *Store) CheckUsagePermission(_ context.Context) (host.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.granted {
		return host.GrantGranted, nil
	}
	return host.GrantDenied, nil
}

// OpenSettingsScreen implements host.Navigator by queueing a request.
func (s *Store) OpenSettingsScreen(_ context.Context, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, storage.SettingsRequest{
		ID:          uuid.NewString(),
		Target:      target,
		RequestedAt: s.nowFn(),
	})
	return nil
}

// SetUsagePermission implements storage.PermissionStore.
func (s *Store) SetUsagePermission(_ context.Context, granted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.granted = granted
	now := s.nowFn()
	for i := range s.requests {
		if s.requests[i].HandledAt == nil {
			handled := now
			s.requests[i].HandledAt = &handled
		}
	}
	return nil
}

// PendingSettingsRequests implements storage.PermissionStore.
func (s *Store) PendingSettingsRequests(_ context.Context) ([]storage.SettingsRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]storage.SettingsRequest, 0, len(s.requests))
	for _, req := range s.requests {
		if req.HandledAt == nil {
			out = append(out, req)
		}
	}
	return out, nil
}
