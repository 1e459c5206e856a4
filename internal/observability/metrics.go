// Package observability provides Prometheus metrics for the sorting
// pipeline.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the metric collectors for batch classification runs.
type Metrics struct {
	registry *prometheus.Registry

	// FilesProcessed counts processed files partitioned by label bucket
	// ("species", "unsorted", "no_animal") and source kind.
	FilesProcessed *prometheus.CounterVec
	// SpeciesDetections counts species classifications by species name.
	SpeciesDetections *prometheus.CounterVec
	// RoutingErrors counts per-file routing failures by category.
	RoutingErrors *prometheus.CounterVec
	// FileProcessDuration observes per-file wall time.
	FileProcessDuration *prometheus.HistogramVec
	// BatchRunsActive tracks whether a batch run is in flight.
	BatchRunsActive prometheus.Gauge
}

// NewMetrics creates and registers the pipeline metrics on a fresh
// registry.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	m := &Metrics{registry: registry}

	m.FilesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wolfvue_files_processed_total",
			Help: "Total number of files processed, partitioned by label bucket and source kind.",
		},
		[]string{"label", "source"},
	)
	m.SpeciesDetections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wolfvue_species_classifications_total",
			Help: "Total number of files classified to a species, partitioned by species name.",
		},
		[]string{"species"},
	)
	m.RoutingErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wolfvue_routing_errors_total",
			Help: "Total number of per-file routing failures, partitioned by error category.",
		},
		[]string{"category"},
	)
	m.FileProcessDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wolfvue_file_process_duration_seconds",
			Help:    "Time taken to classify and route one file.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"source"},
	)
	m.BatchRunsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wolfvue_batch_runs_active",
			Help: "Number of batch runs currently in flight (0 or 1).",
		},
	)

	collectors := []prometheus.Collector{
		m.FilesProcessed,
		m.SpeciesDetections,
		m.RoutingErrors,
		m.FileProcessDuration,
		m.BatchRunsActive,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register pipeline metrics: %w", err)
		}
	}
	return m, nil
}

// Registry exposes the underlying registry for serving or testing.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
