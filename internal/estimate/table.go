package estimate

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/aevon-lab/footprint/internal/core/emission"
)

// RenderTable writes estimates as a text table followed by a total row.
// Totals are summed from the unrounded values.
func RenderTable(w io.Writer, estimates []emission.Estimate) error {
	table := tablewriter.NewWriter(w)
	table.Header("Package", "Minutes", "CO2 (g)")

	totalMinutes := decimal.Zero
	totalCO2 := decimal.Zero
	for _, e := range estimates {
		minutes := decimal.NewFromFloat(e.Minutes)
		co2 := decimal.NewFromFloat(e.CO2Grams)
		totalMinutes = totalMinutes.Add(minutes)
		totalCO2 = totalCO2.Add(co2)

		if err := table.Append([]string{string(e.AppID), minutes.StringFixed(2), co2.StringFixed(2)}); err != nil {
			return fmt.Errorf("append row %s: %w", e.AppID, err)
		}
	}

	table.Footer("Total", totalMinutes.StringFixed(2), totalCO2.StringFixed(2))

	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
