package estimate

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/aevon-lab/footprint/internal/core/emission"
)

// Fixed2 is a number that marshals to JSON with exactly two decimal places.
type Fixed2 struct {
	decimal.Decimal
}

func NewFixed2(v float64) Fixed2 {
	return Fixed2{Decimal: decimal.NewFromFloat(v)}
}

func (f Fixed2) MarshalJSON() ([]byte, error) {
	return []byte(f.StringFixed(2)), nil
}

// Entry is the wire form of one estimate.
type Entry struct {
	Package string `json:"package"`
	Minutes Fixed2 `json:"minutes"`
	CO2     Fixed2 `json:"co2"`
}

// Entries converts estimates to their wire form, preserving order.
// The result is never nil so an empty list encodes as [].
func Entries(estimates []emission.Estimate) []Entry {
	out := make([]Entry, 0, len(estimates))
	for _, e := range estimates {
		out = append(out, Entry{
			Package: string(e.AppID),
			Minutes: NewFixed2(e.Minutes),
			CO2:     NewFixed2(e.CO2Grams),
		})
	}
	return out
}

// Encode serializes estimates as a JSON array of
// {"package": string, "minutes": number, "co2": number}.
func Encode(estimates []emission.Estimate) ([]byte, error) {
	return json.Marshal(Entries(estimates))
}

// SortByCO2 orders estimates by descending CO2, then by application ID.
func SortByCO2(estimates []emission.Estimate) {
	sort.SliceStable(estimates, func(i, j int) bool {
		if estimates[i].CO2Grams != estimates[j].CO2Grams {
			return estimates[i].CO2Grams > estimates[j].CO2Grams
		}
		return estimates[i].AppID < estimates[j].AppID
	})
}
