package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the engine's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "lumen").
	Namespace string

	// Subsystem is the metrics subsystem (default: "engine").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Metrics holds the engine's Prometheus instruments. Pass one to a
// Patcher via WithMetrics.
type Metrics struct {
	ComponentMounts   prometheus.Counter
	ComponentUnmounts prometheus.Counter
	RenderDuration    prometheus.Histogram
	PatchOps          *prometheus.CounterVec
}

// NewMetrics registers and returns the engine metrics.
func NewMetrics(config MetricsConfig) *Metrics {
	if config.Namespace == "" {
		config.Namespace = "lumen"
	}
	if config.Subsystem == "" {
		config.Subsystem = "engine"
	}
	if config.Buckets == nil {
		config.Buckets = prometheus.DefBuckets
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		ComponentMounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_mounts_total",
			Help:        "Total number of component instances mounted",
			ConstLabels: config.ConstLabels,
		}),

		ComponentUnmounts: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_unmounts_total",
			Help:        "Total number of component instances unmounted",
			ConstLabels: config.ConstLabels,
		}),

		RenderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Component render and patch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		PatchOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_ops_total",
			Help:        "Total host operations applied by the patch engine",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
	}
}
