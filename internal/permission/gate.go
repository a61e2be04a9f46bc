// Package permission answers usage-access permission checks and starts the
// settings flow that lets the user grant access.
package permission

import (
	"context"
	"log/slog"

	"github.com/aevon-lab/footprint/internal/host"
)

// Gate wraps the host authorizer and navigator.
type Gate struct {
	authorizer host.Authorizer
	navigator  host.Navigator
}

func NewGate(authorizer host.Authorizer, navigator host.Navigator) *Gate {
	if authorizer == nil {
		panic("permission: authorizer must not be nil")
	}
	if navigator == nil {
		panic("permission: navigator must not be nil")
	}
	return &Gate{authorizer: authorizer, navigator: navigator}
}

// HasUsagePermission reports whether usage access is granted.
// Authorizer failures count as not granted.
func (g *Gate) HasUsagePermission(ctx context.Context) bool {
	grant, err := g.authorizer.CheckUsagePermission(ctx)
	if err != nil {
		slog.Warn("[Permission] Authorizer check failed, reporting denied", "error", err)
		return false
	}
	return grant == host.GrantGranted
}

// RequestPermissionFlow asks the host to open the usage access settings screen.
// It does not wait for the user's decision and never fails the caller.
func (g *Gate) RequestPermissionFlow(ctx context.Context) {
	if err := g.navigator.OpenSettingsScreen(ctx, host.UsageAccessSettings); err != nil {
		slog.Error("[Permission] Failed to open settings screen", "target", host.UsageAccessSettings, "error", err)
		return
	}
	slog.Debug("[Permission] Settings screen requested", "target", host.UsageAccessSettings)
}
