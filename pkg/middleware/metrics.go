package middleware

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	ierrors "github.com/vango-dev/inject/internal/errors"
	"github.com/vango-dev/inject/pkg/inject"
)

// MetricsConfig configures the Prometheus resolution metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "inject").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for resolution duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus resolution metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "inject",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics records resolution statistics. It implements inject.Observer
// and is safe for concurrent use.
type Metrics struct {
	resolutions *prometheus.CounterVec
	points      prometheus.Counter
	filled      prometheus.Counter
	unmatched   *prometheus.CounterVec
	duration    prometheus.Histogram
	pageBytes   prometheus.Histogram
}

// NewMetrics registers the resolution metrics.
//
// Metrics collected:
//   - inject_resolutions_total: Counter of resolutions by status
//     ("ok", "unmatched", or an error code)
//   - inject_points_total: Counter of injection points recognized
//   - inject_points_filled_total: Counter of injection points matched
//   - inject_unmatched_total: Counter of unmatched collections by kind
//   - inject_resolve_duration_seconds: Histogram of resolution duration
//   - inject_page_bytes: Histogram of resolved page size
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolutions_total",
			Help:        "Total number of page resolutions",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		points: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "points_total",
			Help:        "Total number of injection points recognized",
			ConstLabels: config.ConstLabels,
		}),

		filled: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "points_filled_total",
			Help:        "Total number of injection points matched to content",
			ConstLabels: config.ConstLabels,
		}),

		unmatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "unmatched_total",
			Help:        "Collections with content that no injection point referenced",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolve_duration_seconds",
			Help:        "Page resolution duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		pageBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "page_bytes",
			Help:        "Size of resolved pages in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1024, 4, 7), // 1KB to 4MB
		}),
	}
}

// ObserveResolve implements inject.Observer.
func (m *Metrics) ObserveResolve(_ context.Context, stats inject.ResolveStats) {
	status := "ok"
	if len(stats.Orphans) > 0 {
		status = "unmatched"
	}
	m.resolutions.WithLabelValues(status).Inc()
	m.points.Add(float64(stats.Points))
	m.filled.Add(float64(stats.Filled))
	for _, p := range stats.Orphans {
		m.unmatched.WithLabelValues(p.Kind.String()).Inc()
	}
	m.duration.Observe(stats.Duration.Seconds())
	m.pageBytes.Observe(float64(stats.OutputBytes))
}

// RecordError counts a failed resolution under its error code.
func (m *Metrics) RecordError(err error) {
	if err == nil {
		return
	}
	m.resolutions.WithLabelValues(categorizeError(err)).Inc()
}

// categorizeError keeps the status label low-cardinality.
func categorizeError(err error) string {
	if code := ierrors.Code(err); code != "" {
		return code
	}
	return "internal"
}
