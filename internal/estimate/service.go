// Package estimate runs the usage query pipeline: resolve the window, query
// the host provider, filter and aggregate foreground time, then convert it to
// emission estimates.
package estimate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/aevon-lab/footprint/internal/core/emission"
	coreerr "github.com/aevon-lab/footprint/internal/core/errors"
	"github.com/aevon-lab/footprint/internal/core/usage"
	"github.com/aevon-lab/footprint/internal/core/window"
	"github.com/aevon-lab/footprint/internal/host"
	"github.com/aevon-lab/footprint/internal/metrics"
)

const defaultMaxParallelShards = 4

// PermissionChecker is the part of the permission gate the service needs.
type PermissionChecker interface {
	HasUsagePermission(ctx context.Context) bool
}

// Options tunes the query path.
type Options struct {
	Granularity host.Granularity

	// ShardByDay queries each local day of a multi-day window concurrently
	// and merges the partial aggregates.
	ShardByDay        bool
	MaxParallelShards int

	// EnforcePermission fails queries with PermissionDenied before touching
	// the provider. Without it an ungranted provider simply returns no data.
	EnforcePermission bool
}

// Service computes emission estimates for a window.
type Service struct {
	table    *emission.Table
	provider host.UsageProvider
	platform host.Platform
	resolver *window.Resolver
	perms    PermissionChecker
	opts     Options
	inflight singleflight.Group
}

// NewService creates an estimate service. perms may be nil when
// opts.EnforcePermission is false.
func NewService(
	table *emission.Table,
	provider host.UsageProvider,
	platform host.Platform,
	resolver *window.Resolver,
	perms PermissionChecker,
	opts Options,
) *Service {
	if table == nil {
		panic("estimate: table must not be nil")
	}
	if provider == nil {
		panic("estimate: provider must not be nil")
	}
	if platform == nil {
		panic("estimate: platform must not be nil")
	}
	if resolver == nil {
		panic("estimate: resolver must not be nil")
	}
	if opts.EnforcePermission && perms == nil {
		panic("estimate: permission checker required when enforcing permission")
	}
	if opts.Granularity == "" {
		opts.Granularity = host.IntervalDaily
	}
	if opts.MaxParallelShards <= 0 {
		opts.MaxParallelShards = defaultMaxParallelShards
	}

	return &Service{
		table:    table,
		provider: provider,
		platform: platform,
		resolver: resolver,
		perms:    perms,
		opts:     opts,
	}
}

// Table returns the emission factor table the service uses.
func (s *Service) Table() *emission.Table {
	return s.table
}

// DailyUsage estimates emissions from local midnight until now.
func (s *Service) DailyUsage(ctx context.Context) ([]emission.Estimate, error) {
	if err := s.precheck(ctx); err != nil {
		return nil, err
	}
	return s.run(ctx, "daily", s.resolver.Daily())
}

// RangeUsage estimates emissions for [start, end).
func (s *Service) RangeUsage(ctx context.Context, start, end time.Time) ([]emission.Estimate, error) {
	if err := s.precheck(ctx); err != nil {
		return nil, err
	}
	w, err := s.resolver.Custom(start, end)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, "range", w)
}

func (s *Service) precheck(ctx context.Context) error {
	if !s.platform.SupportsUsageStats() {
		return coreerr.ErrUnsupportedPlatform
	}
	if s.opts.EnforcePermission && !s.perms.HasUsagePermission(ctx) {
		return coreerr.ErrPermissionDenied
	}
	return nil
}

// run executes one query. Identical windows queried concurrently share a
// single provider round trip; every caller still gets its own slice.
// The shared call is detached from any one caller's cancellation, and each
// caller stops waiting when its own ctx is done.
func (s *Service) run(ctx context.Context, kind string, w window.Window) ([]emission.Estimate, error) {
	started := time.Now()
	key := fmt.Sprintf("%s|%d|%d", s.opts.Granularity, w.Start.UnixMilli(), w.End.UnixMilli())

	flightCtx := context.WithoutCancel(ctx)
	ch := s.inflight.DoChan(key, func() (interface{}, error) {
		return s.compute(flightCtx, w)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		metrics.QueryDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
		slog.Debug("[Estimate] Caller left before query completed", "kind", kind, "window", w.String(), "error", ctx.Err())
		return nil, ctx.Err()
	}
	result, err, shared := res.Val, res.Err, res.Shared

	outcome := "ok"
	if err != nil {
		outcome = string(coreerr.KindOf(err))
	}
	metrics.QueryDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())

	if err != nil {
		slog.Debug("[Estimate] Query failed", "kind", kind, "window", w.String(), "outcome", outcome, "error", err)
		return nil, err
	}

	estimates := result.([]emission.Estimate)
	slog.Debug("[Estimate] Query completed",
		"kind", kind,
		"window", w.String(),
		"apps", len(estimates),
		"shared", shared,
		"duration", time.Since(started),
	)

	out := make([]emission.Estimate, len(estimates))
	copy(out, estimates)
	return out, nil
}

func (s *Service) compute(ctx context.Context, w window.Window) ([]emission.Estimate, error) {
	shards := []window.Window{w}
	if s.opts.ShardByDay {
		shards = s.resolver.SplitDays(w)
	}
	metrics.QueryShards.Observe(float64(len(shards)))

	var (
		agg      *usage.Aggregated
		rawCount int
		err      error
	)
	if len(shards) == 1 {
		agg, rawCount, err = s.queryShard(ctx, shards[0], nil)
	} else {
		agg, rawCount, err = s.queryShards(ctx, shards)
	}
	if err != nil {
		return nil, err
	}

	if rawCount == 0 {
		return nil, coreerr.ErrNoDataAvailable
	}

	return emission.Calculate(agg, s.table), nil
}

// queryShard fetches and aggregates one window. rawCount is the number of
// records the provider returned before filtering. When owns is set, records
// it rejects belong to another shard and are dropped.
func (s *Service) queryShard(ctx context.Context, w window.Window, owns func(usage.Record) bool) (*usage.Aggregated, int, error) {
	records, err := s.provider.QueryUsageRecords(ctx, s.opts.Granularity, w.Start, w.End)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, err
		}
		return nil, 0, coreerr.Wrap(coreerr.KindProviderFailure, err, "usage provider query failed")
	}

	if owns != nil {
		kept := records[:0:0]
		for _, rec := range records {
			if owns(rec) {
				kept = append(kept, rec)
			}
		}
		records = kept
	}
	return usage.Aggregate(records, s.table), len(records), nil
}

// queryShards fans the shards out over a bounded errgroup and merges the
// partial aggregates in shard order. A record spanning several shards is
// returned by each of them, so it is kept only by the shard holding its
// interval start (the first shard for records starting before the window).
func (s *Service) queryShards(ctx context.Context, shards []window.Window) (*usage.Aggregated, int, error) {
	partials := make([]*usage.Aggregated, len(shards))
	counts := make([]int, len(shards))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxParallelShards)

	for i, shard := range shards {
		first := i == 0
		owns := func(rec usage.Record) bool {
			if rec.IntervalStart.Before(shard.Start) {
				return first
			}
			return rec.IntervalStart.Before(shard.End)
		}
		g.Go(func() error {
			agg, n, err := s.queryShard(gctx, shard, owns)
			if err != nil {
				return fmt.Errorf("shard %s: %w", shard.String(), err)
			}
			partials[i] = agg
			counts[i] = n
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	merged := usage.NewAggregated()
	total := 0
	for i, partial := range partials {
		merged.Merge(partial)
		total += counts[i]
	}
	return merged, total, nil
}
