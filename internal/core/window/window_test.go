package window

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	coreerr "github.com/aevon-lab/footprint/internal/core/errors"
)

func TestResolver_Daily(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)

	tests := []struct {
		name      string
		now       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "afternoon",
			now:       time.Date(2024, 1, 1, 15, 30, 0, 0, loc),
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2024, 1, 1, 15, 30, 0, 0, loc),
		},
		{
			name:      "exactly midnight",
			now:       time.Date(2024, 3, 10, 0, 0, 0, 0, loc),
			wantStart: time.Date(2024, 3, 10, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2024, 3, 10, 0, 0, 0, 0, loc),
		},
		{
			name:      "clock reported in another zone",
			now:       time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 2, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2024, 1, 2, 3, 0, 0, 0, loc),
		},
		{
			name:      "sub-millisecond precision is dropped",
			now:       time.Date(2024, 1, 1, 8, 0, 0, 123456789, loc),
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2024, 1, 1, 8, 0, 0, 123000000, loc),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clk := clock.NewMock()
			clk.Set(tc.now)

			w := NewResolver(clk, loc, false).Daily()

			require.True(t, tc.wantStart.Equal(w.Start), "start: want %s got %s", tc.wantStart, w.Start)
			require.True(t, tc.wantEnd.Equal(w.End), "end: want %s got %s", tc.wantEnd, w.End)
		})
	}
}

func TestResolver_Custom(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	permissive := NewResolver(clock.NewMock(), time.UTC, false)
	w, err := permissive.Custom(start, end)
	require.NoError(t, err)
	require.True(t, w.Inverted())
	require.True(t, start.Equal(w.Start))
	require.True(t, end.Equal(w.End))

	strict := NewResolver(clock.NewMock(), time.UTC, true)
	_, err = strict.Custom(start, end)
	require.ErrorIs(t, err, coreerr.ErrInvalidRange)

	w, err = strict.Custom(end, start)
	require.NoError(t, err)
	require.False(t, w.Inverted())

	w, err = strict.Custom(start, start)
	require.NoError(t, err)
	require.True(t, w.Start.Equal(w.End))
}

func TestResolver_SplitDays(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	r := NewResolver(clock.NewMock(), loc, false)

	tests := []struct {
		name       string
		window     Window
		wantShards int
	}{
		{
			name:       "within one day",
			window:     Window{Start: time.Date(2024, 1, 1, 1, 0, 0, 0, loc), End: time.Date(2024, 1, 1, 23, 0, 0, 0, loc)},
			wantShards: 1,
		},
		{
			name:       "ends on midnight",
			window:     Window{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, loc), End: time.Date(2024, 1, 3, 0, 0, 0, 0, loc)},
			wantShards: 2,
		},
		{
			name:       "partial first and last day",
			window:     Window{Start: time.Date(2024, 1, 1, 12, 0, 0, 0, loc), End: time.Date(2024, 1, 4, 6, 0, 0, 0, loc)},
			wantShards: 4,
		},
		{
			name:       "empty window",
			window:     Window{Start: time.Date(2024, 1, 1, 12, 0, 0, 0, loc), End: time.Date(2024, 1, 1, 12, 0, 0, 0, loc)},
			wantShards: 1,
		},
		{
			name:       "inverted window",
			window:     Window{Start: time.Date(2024, 1, 5, 0, 0, 0, 0, loc), End: time.Date(2024, 1, 1, 0, 0, 0, 0, loc)},
			wantShards: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			shards := r.SplitDays(tc.window)
			require.Len(t, shards, tc.wantShards)
			require.True(t, tc.window.Start.Equal(shards[0].Start))
			require.True(t, tc.window.End.Equal(shards[len(shards)-1].End))

			for i := 1; i < len(shards); i++ {
				require.True(t, shards[i-1].End.Equal(shards[i].Start), "shards must be contiguous")
				require.True(t, StartOfDay(shards[i].Start, loc).Equal(shards[i].Start), "shard must start at midnight")
			}
		})
	}
}

func TestFromMillis(t *testing.T) {
	w := FromMillis(1704067200000, 1704123000000)
	require.Equal(t, int64(1704067200000), w.Start.UnixMilli())
	require.Equal(t, int64(1704123000000), w.End.UnixMilli())
}

func TestLoadLocation(t *testing.T) {
	loc, err := LoadLocation("")
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)

	loc, err = LoadLocation("UTC")
	require.NoError(t, err)
	require.Equal(t, time.UTC, loc)

	_, err = LoadLocation("Mars/Olympus_Mons")
	require.ErrorContains(t, err, "invalid timezone")
}
