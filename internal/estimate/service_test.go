package estimate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aevon-lab/footprint/internal/core/emission"
	coreerr "github.com/aevon-lab/footprint/internal/core/errors"
	"github.com/aevon-lab/footprint/internal/core/storage/memory"
	"github.com/aevon-lab/footprint/internal/core/usage"
	"github.com/aevon-lab/footprint/internal/core/window"
	"github.com/aevon-lab/footprint/internal/host"
	hostmocks "github.com/aevon-lab/footprint/internal/mocks/host"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testZone = time.FixedZone("UTC+2", 2*60*60)

type fakePermissions bool

func (f fakePermissions) HasUsagePermission(context.Context) bool { return bool(f) }

func testTable(t *testing.T) *emission.Table {
	t.Helper()
	table, err := emission.NewTable([]emission.Factor{
		{AppID: "app.a", Name: "A", GramsPerMinute: 1.0},
		{AppID: "app.b", Name: "B", GramsPerMinute: 0.5},
	})
	require.NoError(t, err)
	return table
}

func newTestService(t *testing.T, provider host.UsageProvider, opts Options, platform host.Platform, perms PermissionChecker) (*Service, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(time.Date(2024, 1, 1, 15, 30, 0, 0, testZone))
	resolver := window.NewResolver(clk, testZone, false)
	if platform == nil {
		platform = host.StaticPlatform{APILevel: 34}
	}
	return NewService(testTable(t), provider, platform, resolver, perms, opts), clk
}

func rec(id string, millis int64, start, end time.Time) usage.Record {
	return usage.Record{AppID: usage.ApplicationID(id), ForegroundMillis: millis, IntervalStart: start, IntervalEnd: end}
}

func TestService_DailyUsage_WindowAndCalculation(t *testing.T) {
	provider := hostmocks.NewUsageProvider(t)
	svc, _ := newTestService(t, provider, Options{}, nil, nil)

	wantStart := time.Date(2024, 1, 1, 0, 0, 0, 0, testZone)
	wantEnd := time.Date(2024, 1, 1, 15, 30, 0, 0, testZone)

	provider.EXPECT().
		QueryUsageRecords(mock.Anything, host.IntervalDaily,
			mock.MatchedBy(func(ts time.Time) bool { return ts.Equal(wantStart) }),
			mock.MatchedBy(func(ts time.Time) bool { return ts.Equal(wantEnd) })).
		Return([]usage.Record{rec("app.a", 120000, wantStart, wantEnd)}, nil).
		Once()

	got, err := svc.DailyUsage(context.Background())
	require.NoError(t, err)
	require.Equal(t, []emission.Estimate{{AppID: "app.a", Minutes: 2.0, CO2Grams: 2.0}}, got)

	body, err := Encode(got)
	require.NoError(t, err)
	require.JSONEq(t, `[{"package":"app.a","minutes":2.00,"co2":2.00}]`, string(body))
}

func TestService_RangeUsage_Outcomes(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, testZone)
	end := start.Add(24 * time.Hour)

	tests := []struct {
		name      string
		records   []usage.Record
		err       error
		want      []emission.Estimate
		wantKind  coreerr.Kind
		wantIsErr error
	}{
		{
			name: "accumulates and filters",
			records: []usage.Record{
				rec("app.a", 30000, start, end),
				rec("com.untracked", 999999, start, end),
				rec("app.b", 60000, start, end),
				rec("app.a", 90000, start, end),
			},
			want: []emission.Estimate{
				{AppID: "app.a", Minutes: 2.0, CO2Grams: 2.0},
				{AppID: "app.b", Minutes: 1.0, CO2Grams: 0.5},
			},
		},
		{
			name:    "zero foreground time is kept",
			records: []usage.Record{rec("app.b", 0, start, end)},
			want:    []emission.Estimate{{AppID: "app.b", Minutes: 0, CO2Grams: 0}},
		},
		{
			name:    "only untracked records yields empty success",
			records: []usage.Record{rec("com.untracked", 60000, start, end)},
			want:    []emission.Estimate{},
		},
		{
			name:      "nil provider result is no data",
			records:   nil,
			wantKind:  coreerr.KindNoDataAvailable,
			wantIsErr: coreerr.ErrNoDataAvailable,
		},
		{
			name:      "empty provider result is no data",
			records:   []usage.Record{},
			wantKind:  coreerr.KindNoDataAvailable,
			wantIsErr: coreerr.ErrNoDataAvailable,
		},
		{
			name:     "provider failure",
			err:      errors.New("service unavailable"),
			wantKind: coreerr.KindProviderFailure,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			provider := hostmocks.NewUsageProvider(t)
			provider.EXPECT().
				QueryUsageRecords(mock.Anything, host.IntervalDaily, mock.Anything, mock.Anything).
				Return(tc.records, tc.err).
				Once()

			svc, _ := newTestService(t, provider, Options{}, nil, nil)
			got, err := svc.RangeUsage(context.Background(), start, end)

			if tc.wantKind != "" {
				require.Error(t, err)
				require.Equal(t, tc.wantKind, coreerr.KindOf(err))
				if tc.wantIsErr != nil {
					require.ErrorIs(t, err, tc.wantIsErr)
				}
				require.Nil(t, got)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestService_EmptySuccessEncodesAsEmptyArray(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, testZone)
	provider := hostmocks.NewUsageProvider(t)
	provider.EXPECT().
		QueryUsageRecords(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]usage.Record{rec("com.untracked", 1, start, start)}, nil).
		Once()

	svc, _ := newTestService(t, provider, Options{}, nil, nil)
	got, err := svc.RangeUsage(context.Background(), start, start.Add(time.Hour))
	require.NoError(t, err)

	body, err := Encode(got)
	require.NoError(t, err)
	require.Equal(t, "[]", string(body))
}

func TestService_UnsupportedPlatformSkipsProvider(t *testing.T) {
	provider := hostmocks.NewUsageProvider(t)
	svc, _ := newTestService(t, provider, Options{}, host.StaticPlatform{APILevel: 19}, nil)

	_, err := svc.DailyUsage(context.Background())
	require.ErrorIs(t, err, coreerr.ErrUnsupportedPlatform)

	_, err = svc.RangeUsage(context.Background(), time.Unix(0, 0), time.Unix(60, 0))
	require.ErrorIs(t, err, coreerr.ErrUnsupportedPlatform)
}

func TestService_EnforcedPermission(t *testing.T) {
	provider := hostmocks.NewUsageProvider(t)
	svc, _ := newTestService(t, provider, Options{EnforcePermission: true}, nil, fakePermissions(false))

	_, err := svc.DailyUsage(context.Background())
	require.ErrorIs(t, err, coreerr.ErrPermissionDenied)
	require.Equal(t, coreerr.KindPermissionDenied, coreerr.KindOf(err))
}

func TestService_InvertedRange(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, testZone)
	end := start.Add(-time.Hour)

	t.Run("permissive passes through to provider", func(t *testing.T) {
		provider := hostmocks.NewUsageProvider(t)
		provider.EXPECT().
			QueryUsageRecords(mock.Anything, host.IntervalDaily, mock.Anything, mock.Anything).
			Return(nil, nil).
			Once()

		svc, _ := newTestService(t, provider, Options{}, nil, nil)
		_, err := svc.RangeUsage(context.Background(), start, end)
		require.ErrorIs(t, err, coreerr.ErrNoDataAvailable)
	})

	t.Run("strict rejects before querying", func(t *testing.T) {
		provider := hostmocks.NewUsageProvider(t)
		resolver := window.NewResolver(clock.NewMock(), testZone, true)
		svc := NewService(testTable(t), provider, host.StaticPlatform{APILevel: 34}, resolver, nil, Options{})

		_, err := svc.RangeUsage(context.Background(), start, end)
		require.ErrorIs(t, err, coreerr.ErrInvalidRange)
	})
}

func TestService_Idempotent(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, testZone)
	end := start.Add(24 * time.Hour)

	store := memory.NewStore(true)
	store.AddRecords(host.IntervalDaily,
		rec("app.a", 45000, start, end),
		rec("app.b", 75000, start, end),
	)

	svc, _ := newTestService(t, store, Options{}, nil, nil)

	first, err := svc.RangeUsage(context.Background(), start, end)
	require.NoError(t, err)
	second, err := svc.RangeUsage(context.Background(), start, end)
	require.NoError(t, err)
	require.Equal(t, first, second)

	a, err := Encode(first)
	require.NoError(t, err)
	b, err := Encode(second)
	require.NoError(t, err)
	require.Equal(t, string(a), string(b))
}

func TestService_ShardByDayMatchesUnsharded(t *testing.T) {
	day0 := time.Date(2024, 1, 1, 0, 0, 0, 0, testZone)
	day := 24 * time.Hour
	start := day0.Add(6 * time.Hour)
	end := day0.Add(2*day + 6*time.Hour)

	store := memory.NewStore(true)
	store.AddRecords(host.IntervalDaily,
		rec("app.a", 60000, day0, day0.Add(day)),
		rec("app.b", 120000, day0.Add(day), day0.Add(2*day)),
		rec("app.a", 30000, day0.Add(2*day), day0.Add(3*day)),
		rec("com.untracked", 30000, day0.Add(2*day), day0.Add(3*day)),
		// zero-length buckets on a shard boundary and at the window start
		rec("app.a", 60000, day0.Add(day), day0.Add(day)),
		rec("app.b", 60000, start, start),
	)
	store.AddRecords(host.IntervalWeekly,
		rec("app.b", 600000, day0, day0.Add(7*day)),
	)

	for _, granularity := range []host.Granularity{host.IntervalDaily, host.IntervalWeekly} {
		t.Run(string(granularity), func(t *testing.T) {
			plain, _ := newTestService(t, store, Options{Granularity: granularity}, nil, nil)
			sharded, _ := newTestService(t, store, Options{Granularity: granularity, ShardByDay: true, MaxParallelShards: 2}, nil, nil)

			want, err := plain.RangeUsage(context.Background(), start, end)
			require.NoError(t, err)
			got, err := sharded.RangeUsage(context.Background(), start, end)
			require.NoError(t, err)

			require.ElementsMatch(t, want, got)
		})
	}

	t.Run("zero-length boundary buckets are counted once", func(t *testing.T) {
		sharded, _ := newTestService(t, store, Options{ShardByDay: true, MaxParallelShards: 2}, nil, nil)
		got, err := sharded.RangeUsage(context.Background(), start, end)
		require.NoError(t, err)

		byApp := map[usage.ApplicationID]float64{}
		for _, e := range got {
			byApp[e.AppID] = e.Minutes
		}
		require.InDelta(t, 1.5+1.0, byApp["app.a"], 1e-9)
		require.InDelta(t, 2.0+1.0, byApp["app.b"], 1e-9)
	})
}

func TestService_SharedQuerySurvivesCallerCancellation(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, testZone)
	end := start.Add(24 * time.Hour)

	entered := make(chan context.Context, 2)
	release := make(chan struct{})

	provider := hostmocks.NewUsageProvider(t)
	provider.EXPECT().
		QueryUsageRecords(mock.Anything, host.IntervalDaily, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ host.Granularity, s, e time.Time) ([]usage.Record, error) {
			entered <- ctx
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return []usage.Record{rec("app.a", 60000, s, e)}, nil
		})

	svc, _ := newTestService(t, provider, Options{}, nil, nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.RangeUsage(ctxA, start, end)
		errA <- err
	}()

	flightCtx := <-entered
	cancelA()
	require.ErrorIs(t, <-errA, context.Canceled)
	require.NoError(t, flightCtx.Err(), "shared call must outlive a departed caller")

	type result struct {
		estimates []emission.Estimate
		err       error
	}
	resB := make(chan result, 1)
	go func() {
		got, err := svc.RangeUsage(context.Background(), start, end)
		resB <- result{got, err}
	}()
	close(release)

	b := <-resB
	require.NoError(t, b.err)
	require.Equal(t, []emission.Estimate{{AppID: "app.a", Minutes: 1, CO2Grams: 1}}, b.estimates)
}

func TestService_ConcurrentIdenticalQueriesGetIndependentSlices(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, testZone)
	end := start.Add(24 * time.Hour)

	release := make(chan struct{})
	provider := hostmocks.NewUsageProvider(t)
	provider.EXPECT().
		QueryUsageRecords(mock.Anything, host.IntervalDaily, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, _ host.Granularity, s, e time.Time) ([]usage.Record, error) {
			<-release
			return []usage.Record{rec("app.a", 60000, s, e), rec("app.b", 120000, s, e)}, nil
		})

	svc, _ := newTestService(t, provider, Options{}, nil, nil)

	const callers = 4
	results := make(chan []emission.Estimate, callers)
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		go func() {
			got, err := svc.RangeUsage(context.Background(), start, end)
			errs <- err
			results <- got
		}()
	}
	close(release)

	var all [][]emission.Estimate
	for i := 0; i < callers; i++ {
		require.NoError(t, <-errs)
		all = append(all, <-results)
	}

	all[0][0].CO2Grams = 999
	for _, got := range all[1:] {
		require.Equal(t, []emission.Estimate{
			{AppID: "app.a", Minutes: 1, CO2Grams: 1},
			{AppID: "app.b", Minutes: 2, CO2Grams: 1},
		}, got)
	}
}

func TestService_ShardFailureCancelsQuery(t *testing.T) {
	day0 := time.Date(2024, 1, 1, 0, 0, 0, 0, testZone)
	var calls atomic.Int32

	provider := hostmocks.NewUsageProvider(t)
	provider.EXPECT().
		QueryUsageRecords(mock.Anything, host.IntervalDaily, mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ host.Granularity, start, end time.Time) ([]usage.Record, error) {
			calls.Add(1)
			if start.Equal(day0) {
				return nil, errors.New("disk error")
			}
			return []usage.Record{rec("app.a", 60000, start, end)}, nil
		}).
		Maybe()

	svc, _ := newTestService(t, provider, Options{ShardByDay: true, MaxParallelShards: 1}, nil, nil)
	_, err := svc.RangeUsage(context.Background(), day0, day0.Add(72*time.Hour))

	require.Error(t, err)
	require.Equal(t, coreerr.KindProviderFailure, coreerr.KindOf(err))
	require.GreaterOrEqual(t, calls.Load(), int32(1))
}

func TestSortByCO2(t *testing.T) {
	estimates := []emission.Estimate{
		{AppID: "b", CO2Grams: 1},
		{AppID: "c", CO2Grams: 5},
		{AppID: "a", CO2Grams: 1},
	}
	SortByCO2(estimates)
	require.Equal(t, []usage.ApplicationID{"c", "a", "b"},
		[]usage.ApplicationID{estimates[0].AppID, estimates[1].AppID, estimates[2].AppID})
}
