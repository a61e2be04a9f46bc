// Package host declares the collaborators the estimation engine consumes from
// the device platform: the usage statistics provider, the permission
// authority, settings navigation and the platform capability probe.
package host

import (
	"context"
	"fmt"
	"time"

	"github.com/aevon-lab/footprint/internal/core/usage"
)

// Granularity is the bucket size the host uses to report usage intervals.
type Granularity string

const (
	IntervalDaily   Granularity = "daily"
	IntervalWeekly  Granularity = "weekly"
	IntervalMonthly Granularity = "monthly"
	IntervalYearly  Granularity = "yearly"
	IntervalBest    Granularity = "best"
)

// ParseGranularity validates a granularity name. Empty means daily.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case "":
		return IntervalDaily, nil
	case IntervalDaily, IntervalWeekly, IntervalMonthly, IntervalYearly, IntervalBest:
		return g, nil
	default:
		return "", fmt.Errorf("invalid granularity %q (must be daily, weekly, monthly, yearly or best)", s)
	}
}

// UsageProvider returns raw per-application usage records for a window.
// A nil or empty result means the host had no data for the window.
type UsageProvider interface {
	QueryUsageRecords(ctx context.Context, granularity Granularity, start, end time.Time) ([]usage.Record, error)
}

// Grant is the host's answer to a usage-access permission check.
type Grant int

const (
	GrantDenied Grant = iota
	GrantGranted
)

func (g Grant) String() string {
	if g == GrantGranted {
		return "granted"
	}
	return "denied"
}

// Authorizer reports whether usage statistics access is granted.
type Authorizer interface {
	CheckUsagePermission(ctx context.Context) (Grant, error)
}

// UsageAccessSettings is the settings screen where the user grants usage access.
const UsageAccessSettings = "usage_access_settings"

// Navigator opens a host settings screen. It does not wait for the user.
type Navigator interface {
	OpenSettingsScreen(ctx context.Context, target string) error
}

// Platform reports host capabilities.
type Platform interface {
	SupportsUsageStats() bool
}

// LollipopAPILevel is the first platform level exposing usage statistics.
const LollipopAPILevel = 21

// StaticPlatform is a Platform with a fixed API level.
type StaticPlatform struct {
	APILevel    int
	MinAPILevel int
}

// SupportsUsageStats reports whether APILevel reaches MinAPILevel
// (LollipopAPILevel when unset).
func (p StaticPlatform) SupportsUsageStats() bool {
	minLevel := p.MinAPILevel
	if minLevel <= 0 {
		minLevel = LollipopAPILevel
	}
	return p.APILevel >= minLevel
}
