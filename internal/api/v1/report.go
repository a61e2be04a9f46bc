package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/aevon-lab/footprint/internal/core/usage"
)

// UsageReport is one upload of host usage statistics from a device.
// The device queries its usage statistics service and forwards the buckets
// verbatim; the server never aggregates on write.
type UsageReport struct {
	// ID is a client-chosen idempotency key. The ingestion service assigns a
	// UUID when it is empty.
	ID string `json:"id"`

	// Granularity is the bucket size the device queried with ("daily" when empty).
	Granularity string `json:"granularity"`

	// Records are the host buckets, one per application and interval.
	Records []UsageRecord `json:"records"`

	// ReceivedAt is set by the ingestion service, not the client.
	ReceivedAt time.Time `json:"received_at"`
}

// UsageRecord is the wire form of one host bucket.
// Interval bounds are epoch milliseconds, as reported by the host.
type UsageRecord struct {
	Package          string `json:"package"`
	ForegroundTimeMs int64  `json:"foreground_time_ms"`
	IntervalStart    int64  `json:"interval_start"`
	IntervalEnd      int64  `json:"interval_end"`
}

// Validate checks the report envelope and every record.
func (r *UsageReport) Validate() error {
	if len(r.Records) == 0 {
		return fmt.Errorf("records must not be empty")
	}
	for i, rec := range r.Records {
		if strings.TrimSpace(rec.Package) == "" {
			return fmt.Errorf("records[%d]: package is required", i)
		}
		if rec.ForegroundTimeMs < 0 {
			return fmt.Errorf("records[%d]: foreground_time_ms must be >= 0", i)
		}
		if rec.IntervalEnd < rec.IntervalStart {
			return fmt.Errorf("records[%d]: interval_end must not be before interval_start", i)
		}
	}
	return nil
}

// ToRecord converts the wire form to the domain record.
func (r UsageRecord) ToRecord() usage.Record {
	return usage.Record{
		AppID:            usage.ApplicationID(r.Package),
		ForegroundMillis: r.ForegroundTimeMs,
		IntervalStart:    time.UnixMilli(r.IntervalStart).UTC(),
		IntervalEnd:      time.UnixMilli(r.IntervalEnd).UTC(),
	}
}

// UsageRecords converts every record of the report.
func (r *UsageReport) UsageRecords() []usage.Record {
	out := make([]usage.Record, 0, len(r.Records))
	for _, rec := range r.Records {
		out = append(out, rec.ToRecord())
	}
	return out
}
