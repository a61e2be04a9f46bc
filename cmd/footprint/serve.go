package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"github.com/aevon-lab/footprint/internal/bridge"
	corecfg "github.com/aevon-lab/footprint/internal/core/config"
	"github.com/aevon-lab/footprint/internal/core/storage/postgres"
	"github.com/aevon-lab/footprint/internal/core/window"
	"github.com/aevon-lab/footprint/internal/estimate"
	"github.com/aevon-lab/footprint/internal/host"
	"github.com/aevon-lab/footprint/internal/ingestion"
	"github.com/aevon-lab/footprint/internal/migrations"
	"github.com/aevon-lab/footprint/internal/permission"
	"github.com/aevon-lab/footprint/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server: the channel endpoint for usage queries, device usage
report ingestion, the permission admin endpoints, /health and /metrics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(os.Stdout)
	if err != nil {
		return err
	}
	slog.Info("Loaded config",
		"server", cfg.Server,
		"window", cfg.Window,
		"query", cfg.Query,
		"permission", cfg.Permission,
		"platform", cfg.Platform,
		"factors", cfg.Resolved.Table.Len(),
		"factors_fingerprint", cfg.Resolved.Table.Fingerprint(),
	)

	// 1. Storage
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbAdapter.Close()

	// 1.1. Migrations before preparing statements against the schema
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := dbAdapter.Prepare(); err != nil {
		return err
	}

	permAdapter := postgres.NewPermissionAdapter(dbAdapter.DB(), cfg.Permission.DefaultGranted)

	// 2. Engine
	estimateSvc, gate := buildEngine(cfg, dbAdapter, permAdapter, permAdapter, clock.New())

	// 3. HTTP surface
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter, cfg.Server.Mode)
	bridge.NewDispatcher(estimateSvc, gate).RegisterRoutes(srv.Engine)
	ingestion.NewService(dbAdapter, cfg.Server.MaxBodySizeMB).RegisterRoutes(srv.Engine)
	permission.NewAdminService(permAdapter).RegisterRoutes(srv.Engine)

	// 4. Run until signalled
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	slog.Info("Shutdown complete")
	return nil
}

// buildEngine wires the estimate service and permission gate over the given host collaborators.
func buildEngine(
	cfg *corecfg.Config,
	provider host.UsageProvider,
	authorizer host.Authorizer,
	navigator host.Navigator,
	clk clock.Clock,
) (*estimate.Service, *permission.Gate) {
	gate := permission.NewGate(authorizer, navigator)
	resolver := window.NewResolver(clk, cfg.Resolved.Location, cfg.Window.StrictRange)
	platform := host.StaticPlatform{
		APILevel:    cfg.Platform.APILevel,
		MinAPILevel: cfg.Platform.MinAPILevel,
	}

	svc := estimate.NewService(cfg.Resolved.Table, provider, platform, resolver, gate, estimate.Options{
		Granularity:       cfg.Resolved.Granularity,
		ShardByDay:        cfg.Query.ShardByDay,
		MaxParallelShards: cfg.Query.MaxParallelShards,
		EnforcePermission: cfg.Permission.Enforce,
	})
	return svc, gate
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
