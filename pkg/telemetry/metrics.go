package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures Metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "microfun").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the flush duration histogram buckets.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
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

// WithBuckets sets the histogram buckets.
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
		Namespace: "microfun",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a flow.Observer that records Prometheus metrics. It also
// exposes hooks for the live transport.
type Metrics struct {
	dispatches    prometheus.Counter
	commits       prometheus.Counter
	coalesced     prometheus.Counter
	flushes       *prometheus.CounterVec
	flushDuration prometheus.Histogram
	tasks         *prometheus.CounterVec
	liveClients   prometheus.Gauge
	livePatches   prometheus.Counter
	liveErrors    *prometheus.CounterVec
}

// NewMetrics creates and registers the metrics. Registering twice on the
// same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		dispatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatches_total",
			Help:        "Total number of actions applied to the root model",
			ConstLabels: config.ConstLabels,
		}),

		commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commits_total",
			Help:        "Total number of committed root models",
			ConstLabels: config.ConstLabels,
		}),

		coalesced: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_coalesced_total",
			Help:        "Render requests folded into an already pending frame",
			ConstLabels: config.ConstLabels,
		}),

		flushes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of draws by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Time spent building and drawing a tree",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "tasks_total",
			Help:        "Total number of settled tasks by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		liveClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_clients",
			Help:        "Number of connected live clients",
			ConstLabels: config.ConstLabels,
		}),

		livePatches: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_patches_total",
			Help:        "Total number of patches sent to live clients",
			ConstLabels: config.ConstLabels,
		}),

		liveErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_event_errors_total",
			Help:        "Client events that could not be handled, by reason",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Dispatched implements flow.Observer.
func (m *Metrics) Dispatched() { m.dispatches.Inc() }

// Committed implements flow.Observer.
func (m *Metrics) Committed(any) { m.commits.Inc() }

// Coalesced implements flow.Observer.
func (m *Metrics) Coalesced() { m.coalesced.Inc() }

// Flushed implements flow.Observer.
func (m *Metrics) Flushed(d time.Duration, err error) {
	m.flushes.WithLabelValues(status(err)).Inc()
	m.flushDuration.Observe(d.Seconds())
}

// TaskSettled implements flow.Observer.
func (m *Metrics) TaskSettled(err error) {
	m.tasks.WithLabelValues(status(err)).Inc()
}

// ClientConnected records a new live client.
func (m *Metrics) ClientConnected() { m.liveClients.Inc() }

// ClientDisconnected records a closed live client.
func (m *Metrics) ClientDisconnected() { m.liveClients.Dec() }

// PatchesSent records n patches broadcast to one client.
func (m *Metrics) PatchesSent(n int) { m.livePatches.Add(float64(n)) }

// EventError records a client event that failed for reason.
func (m *Metrics) EventError(reason string) { m.liveErrors.WithLabelValues(reason).Inc() }
