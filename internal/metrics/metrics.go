package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Command surface metrics
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footprint_commands_total",
			Help: "Total channel commands dispatched",
		},
		[]string{"method", "status"},
	)

	// Query metrics
	QueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "footprint_query_duration_seconds",
			Help:    "Usage query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"kind"},
	)

	QueryShards = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "footprint_query_shards",
			Help:    "Day shards queried per usage query",
			Buckets: []float64{1, 2, 7, 14, 31, 90, 366},
		},
	)

	// Ingestion metrics
	ReportsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "footprint_reports_ingested_total",
			Help: "Total usage reports received",
		},
		[]string{"result"},
	)

	RecordsIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "footprint_records_ingested_total",
			Help: "Total usage records stored",
		},
	)
)

func init() {
	prometheus.MustRegister(
		CommandsTotal,
		QueryDuration,
		QueryShards,
		ReportsIngested,
		RecordsIngested,
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
