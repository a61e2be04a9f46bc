package emission

import "github.com/aevon-lab/footprint/internal/core/usage"

// MillisPerMinute converts accumulated foreground milliseconds to minutes.
const MillisPerMinute = 60000.0

// Estimate is the emission of one application over a query window.
// Values are unrounded; rounding happens only when results are serialized.
type Estimate struct {
	AppID    usage.ApplicationID
	Minutes  float64
	CO2Grams float64
}

// Calculate converts aggregated foreground time into estimates, one per
// aggregated application, in aggregation order. Applications absent from the
// table are skipped; Aggregate never produces them.
func Calculate(agg *usage.Aggregated, table *Table) []Estimate {
	out := make([]Estimate, 0, agg.Len())
	agg.Each(func(id usage.ApplicationID, millis int64) {
		factor, ok := table.GramsPerMinute(id)
		if !ok {
			return
		}
		minutes := float64(millis) / MillisPerMinute
		out = append(out, Estimate{
			AppID:    id,
			Minutes:  minutes,
			CO2Grams: minutes * factor,
		})
	})
	return out
}
