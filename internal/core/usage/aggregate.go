package usage

// Aggregated maps application IDs to accumulated foreground milliseconds for
// one query. Iteration follows the order in which each application first
// appeared. Built fresh per query; never cached.
type Aggregated struct {
	order  []ApplicationID
	totals map[ApplicationID]int64
}

// NewAggregated returns an empty Aggregated.
func NewAggregated() *Aggregated {
	return &Aggregated{totals: make(map[ApplicationID]int64)}
}

// Add folds millis into the running total for id.
func (a *Aggregated) Add(id ApplicationID, millis int64) {
	if _, ok := a.totals[id]; !ok {
		a.order = append(a.order, id)
	}
	a.totals[id] += millis
}

// Total returns the accumulated millis for id.
func (a *Aggregated) Total(id ApplicationID) (int64, bool) {
	v, ok := a.totals[id]
	return v, ok
}

// Len returns the number of distinct applications.
func (a *Aggregated) Len() int {
	return len(a.order)
}

// IDs returns the applications in first-appearance order.
func (a *Aggregated) IDs() []ApplicationID {
	out := make([]ApplicationID, len(a.order))
	copy(out, a.order)
	return out
}

// Each calls fn for every application in first-appearance order.
func (a *Aggregated) Each(fn func(id ApplicationID, millis int64)) {
	for _, id := range a.order {
		fn(id, a.totals[id])
	}
}

// Merge adds every total of other into a. Keyed sum is associative and
// commutative, so partial results from independent shards can be merged in
// any grouping; only first-appearance order depends on merge order.
func (a *Aggregated) Merge(other *Aggregated) {
	if other == nil {
		return
	}
	other.Each(a.Add)
}

// Aggregate filters records to the catalog and sums foreground time per application.
//
// No clamping, timestamp deduplication or overlap resolution is done: the host
// is trusted to report non-double-counting intervals per application. If it
// does not, overlapping records are counted twice.
func Aggregate(records []Record, catalog Catalog) *Aggregated {
	agg := NewAggregated()
	for _, rec := range Filter(records, catalog) {
		agg.Add(rec.AppID, rec.ForegroundMillis)
	}
	return agg
}
