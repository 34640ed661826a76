package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WriteMetrics dumps all collected metrics to path in the Prometheus text
// exposition format. The process is too short-lived to scrape, so the dump
// at end of run is how the metrics leave the process.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

var (
	rowOutcomeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadsync_row_outcome_total",
			Help: "Total number of processed rows by outcome",
		},
		[]string{"outcome"}, // created, rejected, failed, skipped
	)

	routeCreateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roadsync_route_create_duration_seconds",
			Help:    "Time taken by a single route-creation API call",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	routesCreated = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roadsync_routes_created",
			Help: "Number of routes created in the current run",
		},
	)
)
