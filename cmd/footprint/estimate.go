package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	v1 "github.com/aevon-lab/footprint/internal/api/v1"
	coreerr "github.com/aevon-lab/footprint/internal/core/errors"
	"github.com/aevon-lab/footprint/internal/core/emission"
	"github.com/aevon-lab/footprint/internal/core/storage/memory"
	"github.com/aevon-lab/footprint/internal/estimate"
	"github.com/aevon-lab/footprint/internal/host"
)

var (
	estimateRecordsPath string
	estimateStart       string
	estimateEnd         string
	estimateFormat      string
	estimateSort        bool
	estimateDaily       bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate CO2 for a usage report file",
	Long: `Load a usage report (the JSON body accepted by POST /v1/usage) and print the
CO2 estimate for today, or for the range given by --start and --end.

Range bounds accept RFC3339 timestamps or epoch milliseconds.`,
	Example: `  footprint estimate --records report.json
  footprint estimate --records report.json --start 2024-01-01T00:00:00Z --end 2024-01-08T00:00:00Z --format table --sort`,
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().StringVarP(&estimateRecordsPath, "records", "r", "", "Path to a usage report JSON file")
	estimateCmd.Flags().StringVar(&estimateStart, "start", "", "Range start (RFC3339 or epoch millis)")
	estimateCmd.Flags().StringVar(&estimateEnd, "end", "", "Range end (RFC3339 or epoch millis)")
	estimateCmd.Flags().StringVarP(&estimateFormat, "format", "f", "json", "Output format: json or table")
	estimateCmd.Flags().BoolVar(&estimateDaily, "daily", false, "Estimate from local midnight until now (the default without --start/--end)")
	estimateCmd.Flags().BoolVar(&estimateSort, "sort", false, "Sort by CO2, highest first")
	_ = estimateCmd.MarkFlagRequired("records")
	estimateCmd.MarkFlagsMutuallyExclusive("daily", "start")
	estimateCmd.MarkFlagsMutuallyExclusive("daily", "end")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	if estimateFormat != "json" && estimateFormat != "table" {
		return fmt.Errorf("invalid --format %q (must be json or table)", estimateFormat)
	}
	if (estimateStart == "") != (estimateEnd == "") {
		return fmt.Errorf("--start and --end must be given together")
	}

	cfg, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	report, err := readReport(estimateRecordsPath)
	if err != nil {
		return err
	}
	granularity, err := host.ParseGranularity(report.Granularity)
	if err != nil {
		return err
	}

	store := memory.NewStore(true)
	store.AddRecords(granularity, report.UsageRecords()...)

	// Query at the report's granularity so the loaded buckets are visible.
	cfg.Resolved.Granularity = granularity
	svc, _ := buildEngine(cfg, store, store, store, clock.New())

	estimates, err := queryEstimates(cmd.Context(), svc)
	if err != nil {
		var qe *coreerr.QueryError
		if errors.As(err, &qe) {
			return fmt.Errorf("%s: %w", qe.Kind, err)
		}
		return err
	}

	if estimateSort {
		estimate.SortByCO2(estimates)
	}
	return writeEstimates(cmd.OutOrStdout(), estimateFormat, estimates)
}

func queryEstimates(ctx context.Context, svc *estimate.Service) ([]emission.Estimate, error) {
	if estimateStart == "" {
		return svc.DailyUsage(ctx)
	}

	start, err := parseInstant(estimateStart)
	if err != nil {
		return nil, fmt.Errorf("--start: %w", err)
	}
	end, err := parseInstant(estimateEnd)
	if err != nil {
		return nil, fmt.Errorf("--end: %w", err)
	}
	return svc.RangeUsage(ctx, start, end)
}

func writeEstimates(w io.Writer, format string, estimates []emission.Estimate) error {
	if format == "table" {
		return estimate.RenderTable(w, estimates)
	}

	payload, err := estimate.Encode(estimates)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(payload))
	return err
}

func readReport(path string) (*v1.UsageReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	var report v1.UsageReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse records file: %w", err)
	}
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("invalid records file: %w", err)
	}
	return &report, nil
}

// parseInstant accepts RFC3339 or epoch milliseconds.
func parseInstant(s string) (time.Time, error) {
	if millis, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(millis), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither RFC3339 nor epoch milliseconds", s)
	}
	return t, nil
}
