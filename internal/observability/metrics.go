package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dataset loader and the view endpoints.
type Metrics struct {
	RowsLoaded   prometheus.Counter
	RowsSkipped  prometheus.Counter
	LoadDuration prometheus.Histogram
	DatasetReady prometheus.Gauge

	// Dataset cache metrics.
	DatasetCache *prometheus.CounterVec // labels: result={hit,miss}

	// View aggregation metrics.
	ViewRequests *prometheus.CounterVec   // labels: view, outcome={ok,empty,bad_request}
	ViewDuration *prometheus.HistogramVec // labels: view
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsSkipped,
		m.LoadDuration,
		m.DatasetReady,
		m.DatasetCache,
		m.ViewRequests,
		m.ViewDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accidents",
			Name:      "rows_loaded_total",
			Help:      "Total person rows loaded into the prepared table.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accidents",
			Name:      "rows_skipped_total",
			Help:      "Total malformed rows skipped during loading.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "accidents",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete read-parse-reproject dataset load.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		DatasetReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "accidents",
			Name:      "dataset_ready",
			Help:      "1 when a prepared table is available, 0 otherwise.",
		}),
		DatasetCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accidents",
			Name:      "dataset_cache_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		ViewRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accidents",
			Name:      "view_requests_total",
			Help:      "View endpoint requests by view and outcome.",
		}, []string{"view", "outcome"}),
		ViewDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "accidents",
			Name:      "view_duration_seconds",
			Help:      "Aggregation duration per view.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"view"}),
	}
}
