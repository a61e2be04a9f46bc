package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aevon-lab/footprint/internal/core/emission"
)

var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "List the configured emission factors",
	Long: `List the emission factor table in effect: the built-in table, or the file
named by emission.factors_file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		return renderFactors(cmd.OutOrStdout(), cfg.Resolved.Table)
	},
}

func init() {
	rootCmd.AddCommand(factorsCmd)
}

func renderFactors(w io.Writer, table *emission.Table) error {
	tw := tablewriter.NewWriter(w)
	tw.Header("Package", "Name", "g CO2 / min")
	for _, f := range table.Factors() {
		if err := tw.Append([]string{string(f.AppID), f.Name, strconv.FormatFloat(f.GramsPerMinute, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	if err := tw.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "fingerprint: %s\n", table.Fingerprint())
	return err
}
