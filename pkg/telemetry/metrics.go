package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "backtension").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
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

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "backtension",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the lifecycle collectors.
type Metrics struct {
	viewsLive      prometheus.Gauge
	viewsCreated   prometheus.Counter
	lifecycleOps   *prometheus.CounterVec
	globalBindings prometheus.Gauge
	tasksDeferred  prometheus.Counter
	tasksRun       prometheus.Counter
	taskPanics     prometheus.Counter
	zoneHandles    prometheus.Histogram
}

// NewMetrics registers the collectors. Registering twice on the same
// registry panics, as promauto does.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		viewsLive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "views_live",
			Help:        "Number of views created and not yet removed",
			ConstLabels: config.ConstLabels,
		}),

		viewsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "views_created_total",
			Help:        "Total number of views created",
			ConstLabels: config.ConstLabels,
		}),

		lifecycleOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "lifecycle_ops_total",
			Help:        "Total lifecycle operations by operation and scheduling mode",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "mode"}),

		globalBindings: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "global_bindings",
			Help:        "Number of window/document bindings currently held by views",
			ConstLabels: config.ConstLabels,
		}),

		tasksDeferred: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deferred_tasks_total",
			Help:        "Total tasks deferred to a later loop turn",
			ConstLabels: config.ConstLabels,
		}),

		tasksRun: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deferred_tasks_run_total",
			Help:        "Total deferred tasks that ran to completion",
			ConstLabels: config.ConstLabels,
		}),

		taskPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "deferred_task_panics_total",
			Help:        "Total deferred tasks that panicked",
			ConstLabels: config.ConstLabels,
		}),

		zoneHandles: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "zone_handles",
			Help:        "Leaf handles produced per zone resolution",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 4, 8, 16, 32, 64},
		}),
	}
}

// ViewCreated records a new view.
func (m *Metrics) ViewCreated() {
	if m == nil {
		return
	}
	m.viewsCreated.Inc()
	m.viewsLive.Inc()
}

// ViewRemoved records a view reaching its terminal state.
func (m *Metrics) ViewRemoved() {
	if m == nil {
		return
	}
	m.viewsLive.Dec()
}

// LifecycleOp records a lifecycle operation. deferred selects the mode label.
func (m *Metrics) LifecycleOp(op string, deferred bool) {
	if m == nil {
		return
	}
	mode := "sync"
	if deferred {
		mode = "deferred"
	}
	m.lifecycleOps.WithLabelValues(op, mode).Inc()
}

// GlobalBindingsChanged adjusts the global binding gauge by delta.
func (m *Metrics) GlobalBindingsChanged(delta int) {
	if m == nil || delta == 0 {
		return
	}
	m.globalBindings.Add(float64(delta))
}

// ZonesResolved records the leaf count of one resolution.
func (m *Metrics) ZonesResolved(leaves int) {
	if m == nil {
		return
	}
	m.zoneHandles.Observe(float64(leaves))
}

// TaskDeferred implements loop.Observer.
func (m *Metrics) TaskDeferred() {
	if m == nil {
		return
	}
	m.tasksDeferred.Inc()
}

// TaskRan implements loop.Observer.
func (m *Metrics) TaskRan() {
	if m == nil {
		return
	}
	m.tasksRun.Inc()
}

// TaskPanicked implements loop.Observer.
func (m *Metrics) TaskPanicked() {
	if m == nil {
		return
	}
	m.taskPanics.Inc()
}
