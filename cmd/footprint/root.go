package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	corecfg "github.com/aevon-lab/footprint/internal/core/config"
)

var (
	version    = "dev"
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "footprint",
	Short: "Footprint - social media carbon footprint estimator",
	Long: `Footprint estimates the CO2 emitted by social media use from per-application
foreground time reported by a device and a fixed table of emission factors.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to serve when no subcommand is provided
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (defaults and FOOTPRINT_* env when empty)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and installs the default slog logger.
func loadConfig(logOut io.Writer) (*corecfg.Config, error) {
	cfg, err := corecfg.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogger(logOut, cfg.Resolved.LogLevel)
	return cfg, nil
}

func setupLogger(w io.Writer, level slog.Level) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
