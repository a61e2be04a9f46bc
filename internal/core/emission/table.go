package emission

import (
	"crypto/sha256"
	"fmt"
	"math"
	"strings"

	"github.com/aevon-lab/footprint/internal/core/usage"
)

// Factor is the emission factor of one tracked application.
type Factor struct {
	AppID          usage.ApplicationID `yaml:"package"`
	Name           string              `yaml:"name"`
	GramsPerMinute float64             `yaml:"grams_per_minute"`
}

// Table maps application IDs to grams of CO2 per minute of foreground use.
// It is built once and never mutated, so it is safe to share between
// concurrent queries.
type Table struct {
	factors     map[usage.ApplicationID]Factor
	order       []usage.ApplicationID
	fingerprint string
}

// NewTable validates factors and builds an immutable table.
func NewTable(factors []Factor) (*Table, error) {
	if len(factors) == 0 {
		return nil, fmt.Errorf("emission table must contain at least one factor")
	}

	t := &Table{
		factors: make(map[usage.ApplicationID]Factor, len(factors)),
		order:   make([]usage.ApplicationID, 0, len(factors)),
	}

	h := sha256.New()
	for _, f := range factors {
		if strings.TrimSpace(string(f.AppID)) == "" {
			return nil, fmt.Errorf("emission factor %q: package must not be empty", f.Name)
		}
		if math.IsNaN(f.GramsPerMinute) || math.IsInf(f.GramsPerMinute, 0) || f.GramsPerMinute < 0 {
			return nil, fmt.Errorf("emission factor %q: grams_per_minute must be a non-negative number, got %v", f.AppID, f.GramsPerMinute)
		}
		if _, exists := t.factors[f.AppID]; exists {
			return nil, fmt.Errorf("emission factor %q: duplicate package", f.AppID)
		}
		t.factors[f.AppID] = f
		t.order = append(t.order, f.AppID)
		fmt.Fprintf(h, "%s=%v\n", f.AppID, f.GramsPerMinute)
	}
	t.fingerprint = fmt.Sprintf("%x", h.Sum(nil))

	return t, nil
}

// Contains reports whether id is tracked.
func (t *Table) Contains(id usage.ApplicationID) bool {
	_, ok := t.factors[id]
	return ok
}

// GramsPerMinute returns the factor for id.
func (t *Table) GramsPerMinute(id usage.ApplicationID) (float64, bool) {
	f, ok := t.factors[id]
	return f.GramsPerMinute, ok
}

// Factors returns a copy of all factors in declaration order.
func (t *Table) Factors() []Factor {
	out := make([]Factor, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.factors[id])
	}
	return out
}

// Len returns the number of tracked applications.
func (t *Table) Len() int {
	return len(t.order)
}

// Fingerprint is a SHA-256 over the (package, factor) pairs.
func (t *Table) Fingerprint() string {
	return t.fingerprint
}

var defaultFactors = []Factor{
	{AppID: "com.google.android.youtube", Name: "YouTube", GramsPerMinute: 0.46},
	{AppID: "tv.twitch.android.app", Name: "Twitch", GramsPerMinute: 0.55},
	{AppID: "com.twitter.android", Name: "Twitter", GramsPerMinute: 0.60},
	{AppID: "com.linkedin.android", Name: "LinkedIn", GramsPerMinute: 0.71},
	{AppID: "com.facebook.katana", Name: "Facebook", GramsPerMinute: 0.79},
	{AppID: "com.snapchat.android", Name: "Snapchat", GramsPerMinute: 0.87},
	{AppID: "com.instagram.android", Name: "Instagram", GramsPerMinute: 1.05},
	{AppID: "com.pinterest", Name: "Pinterest", GramsPerMinute: 1.30},
	{AppID: "com.reddit.frontpage", Name: "Reddit", GramsPerMinute: 2.48},
	{AppID: "com.zhiliaoapp.musically", Name: "TikTok", GramsPerMinute: 2.63},
}

// Default returns the built-in table of ten social media applications.
func Default() *Table {
	t, err := NewTable(defaultFactors)
	if err != nil {
		panic(fmt.Sprintf("emission: built-in table is invalid: %v", err))
	}
	return t
}
