package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Workspace-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recap",
			Subsystem: "workspace_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recap",
			Subsystem: "workspace_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// Configuration generations by selected layout and outcome
	ConfigGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recap",
			Subsystem: "workspace_api",
			Name:      "config_generations_total",
			Help:      "Total workspace configuration generations",
		},
		[]string{"layout", "status"},
	)

	// Generation duration histogram. Generation is in-memory, so buckets skew small.
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recap",
			Subsystem: "workspace_api",
			Name:      "generation_duration_seconds",
			Help:      "Configuration generation duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"layout"},
	)

	// Generation cache lookups
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recap",
			Subsystem: "workspace_api",
			Name:      "cache_lookups_total",
			Help:      "Generation cache lookups by result",
		},
		[]string{"result"},
	)

	// Catalog size gauges, set after seeding and on registry changes
	RegisteredModules = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "recap",
			Subsystem: "workspace_api",
			Name:      "registered_modules",
			Help:      "Number of registered workspace modules",
		},
	)

	RegisteredLayouts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "recap",
			Subsystem: "workspace_api",
			Name:      "registered_layouts",
			Help:      "Number of registered layout templates",
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordConfigGeneration records one configuration generation
func RecordConfigGeneration(layout, status string, duration time.Duration) {
	ConfigGenerationsTotal.WithLabelValues(layout, status).Inc()
	GenerationDuration.WithLabelValues(layout).Observe(duration.Seconds())
}

// RecordCacheLookup records a generation cache hit or miss
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(result).Inc()
}

// SetCatalogSize sets the registered module and layout gauges
func SetCatalogSize(modules, layouts int) {
	RegisteredModules.Set(float64(modules))
	RegisteredLayouts.Set(float64(layouts))
}
