package usage

import "time"

// ApplicationID names an installed application, e.g. "com.instagram.android".
// Case-sensitive; it is the join key between usage records and the emission factor table.
type ApplicationID string

// Record is one host reporting interval for one application.
// Several records may reference the same application within a query window;
// their foreground times are additive.
type Record struct {
	AppID            ApplicationID
	ForegroundMillis int64
	IntervalStart    time.Time
	IntervalEnd      time.Time
}

// Catalog reports whether an application is tracked.
type Catalog interface {
	Contains(id ApplicationID) bool
}

// Filter returns the records whose application is in the catalog, preserving order.
func Filter(records []Record, catalog Catalog) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if catalog.Contains(rec.AppID) {
			out = append(out, rec)
		}
	}
	return out
}
