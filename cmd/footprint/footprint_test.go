package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aevon-lab/footprint/internal/core/emission"
)

const sampleReport = `{
  "id": "cli-001",
  "granularity": "daily",
  "records": [
    {"package": "com.instagram.android", "foreground_time_ms": 600000, "interval_start": 1704067200000, "interval_end": 1704153600000},
    {"package": "com.example.notes", "foreground_time_ms": 900000, "interval_start": 1704067200000, "interval_end": 1704153600000}
  ]
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		estimateStart, estimateEnd, estimateFormat, estimateSort, estimateDaily = "", "", "json", false, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeReport(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleReport), 0o644))
	return path
}

func TestEstimateCommand_RangeJSON(t *testing.T) {
	out, err := runCLI(t, "estimate",
		"--records", writeReport(t),
		"--start", "2024-01-01T00:00:00Z",
		"--end", "1704240000000",
	)
	require.NoError(t, err)
	require.JSONEq(t, `[{"package":"com.instagram.android","minutes":10.00,"co2":10.50}]`, strings.TrimSpace(out))
}

func TestEstimateCommand_NoDataReportsKind(t *testing.T) {
	_, err := runCLI(t, "estimate",
		"--records", writeReport(t),
		"--start", "2023-06-01T00:00:00Z",
		"--end", "2023-06-02T00:00:00Z",
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no_data_available")
}

func TestEstimateCommand_RejectsBadFlags(t *testing.T) {
	_, err := runCLI(t, "estimate", "--records", writeReport(t), "--format", "xml")
	require.ErrorContains(t, err, "invalid --format")

	_, err = runCLI(t, "estimate", "--records", writeReport(t), "--format", "json", "--start", "2024-01-01T00:00:00Z")
	require.ErrorContains(t, err, "must be given together")
}

func TestEstimateCommand_ParseErrorsCarryNoKind(t *testing.T) {
	_, err := runCLI(t, "estimate", "--records", writeReport(t), "--start", "yesterday", "--end", "today")
	require.ErrorContains(t, err, "--start")
	require.NotContains(t, err.Error(), "internal_error")
}

func TestParseInstant(t *testing.T) {
	ts, err := parseInstant("1704067200000")
	require.NoError(t, err)
	require.True(t, ts.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	ts, err = parseInstant("2024-01-01T02:00:00+02:00")
	require.NoError(t, err)
	require.True(t, ts.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	_, err = parseInstant("yesterday")
	require.Error(t, err)
}

func TestRenderFactors(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, renderFactors(&out, emission.Default()))

	text := out.String()
	require.Contains(t, text, "com.instagram.android")
	require.Contains(t, text, "1.05")
	require.Contains(t, text, "fingerprint: "+emission.Default().Fingerprint())
}

func TestWriteEstimates_Table(t *testing.T) {
	var out bytes.Buffer
	estimates := []emission.Estimate{{AppID: "com.instagram.android", Minutes: 10, CO2Grams: 10.5}}
	require.NoError(t, writeEstimates(&out, "table", estimates))
	require.Contains(t, out.String(), "10.50")
}
