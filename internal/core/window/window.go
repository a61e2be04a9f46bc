package window

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"

	coreerr "github.com/aevon-lab/footprint/internal/core/errors"
)

// Window is the [Start, End) range over which usage is aggregated.
type Window struct {
	Start time.Time
	End   time.Time
}

// FromMillis builds a window from epoch-millisecond bounds.
func FromMillis(startMillis, endMillis int64) Window {
	return Window{Start: time.UnixMilli(startMillis), End: time.UnixMilli(endMillis)}
}

// Inverted reports whether Start is after End.
func (w Window) Inverted() bool {
	return w.Start.After(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}

// Resolver derives query windows from the current time and caller input.
type Resolver struct {
	clock  clock.Clock
	loc    *time.Location
	strict bool
}

// NewResolver creates a resolver. loc is the device timezone used for day
// boundaries. With strict set, Custom rejects inverted windows; otherwise
// they pass through unchanged.
func NewResolver(clk clock.Clock, loc *time.Location, strict bool) *Resolver {
	if clk == nil {
		clk = clock.New()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{clock: clk, loc: loc, strict: strict}
}

// Location returns the timezone used for day boundaries.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Daily returns [local midnight, now).
func (r *Resolver) Daily() Window {
	now := r.clock.Now().In(r.loc).Truncate(time.Millisecond)
	return Window{Start: StartOfDay(now, r.loc), End: now}
}

// Custom passes caller-supplied bounds through. Inverted bounds fail with
// ErrInvalidRange in strict mode.
func (r *Resolver) Custom(start, end time.Time) (Window, error) {
	w := Window{Start: start.In(r.loc), End: end.In(r.loc)}
	if r.strict && w.Inverted() {
		return Window{}, coreerr.Newf(coreerr.KindInvalidRange,
			"start %s is after end %s", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	}
	return w, nil
}

// SplitDays partitions w into contiguous shards that never cross a local
// midnight. Empty or inverted windows are returned as a single shard.
func (r *Resolver) SplitDays(w Window) []Window {
	if !w.End.After(w.Start) {
		return []Window{w}
	}

	var shards []Window
	cur := w.Start
	for cur.Before(w.End) {
		next := StartOfDay(cur, r.loc).AddDate(0, 0, 1)
		if next.After(w.End) {
			next = w.End
		}
		shards = append(shards, Window{Start: cur, End: next})
		cur = next
	}
	return shards
}

// StartOfDay truncates t to 00:00:00.000 of its calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// LoadLocation resolves a timezone name; "" and "Local" mean the process timezone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}
