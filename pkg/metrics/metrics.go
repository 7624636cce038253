// Package metrics exposes reactree activity as Prometheus metrics.
//
// A Collector supplies hook values for the reactive engine and the renderer,
// plus recording methods for the preview server and snapshot exporter.
// Every method is safe to call on a nil *Collector, so callers with metrics
// disabled pass nil.
//
// Metrics collected (namespace "reactree" by default):
//   - dep_notifications_total: Counter of Dep notifications
//   - dep_subscribers: Histogram of subscribers per notification
//   - watcher_recomputes_total: Counter of recomputes by changed
//   - nodes_realized_total: Counter of realized nodes by kind
//   - nodes_patched_total: Counter of nodes patched in place
//   - nodes_replaced_total: Counter of replaced subtrees
//   - dispatch_total: Counter of dispatched writes by status
//   - dispatch_duration_seconds: Histogram of dispatch duration
//   - preview_clients: Gauge of connected preview clients
//   - snapshots_total: Counter of snapshot writes by sink and status
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/reactree/pkg/reactive"
	"github.com/vango-dev/reactree/pkg/vdom"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "reactree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registerer to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// Gatherer backs Handler.
	// Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry registers the metrics with reg and serves them from it.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = reg
		c.Gatherer = reg
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "reactree",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
		Gatherer:  prometheus.DefaultGatherer,
	}
}

// Collector holds the reactree metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	notifications    prometheus.Counter
	subscribers      prometheus.Histogram
	recomputes       *prometheus.CounterVec
	realized         *prometheus.CounterVec
	patched          prometheus.Counter
	replaced         prometheus.Counter
	dispatches       *prometheus.CounterVec
	dispatchDuration prometheus.Histogram
	clients          prometheus.Gauge
	snapshots        *prometheus.CounterVec
}

// New creates and registers a Collector.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		gatherer: config.Gatherer,

		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dep_notifications_total",
			Help:        "Total number of Dep notifications",
			ConstLabels: config.ConstLabels,
		}),

		subscribers: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dep_subscribers",
			Help:        "Subscribers notified per Dep notification",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 16, 32},
		}),

		recomputes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "watcher_recomputes_total",
			Help:        "Total number of Watcher recomputes",
			ConstLabels: config.ConstLabels,
		}, []string{"changed"}),

		realized: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_realized_total",
			Help:        "Total number of nodes given a fresh host element",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		patched: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_patched_total",
			Help:        "Total number of nodes patched in place",
			ConstLabels: config.ConstLabels,
		}),

		replaced: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_replaced_total",
			Help:        "Total number of subtrees replaced",
			ConstLabels: config.ConstLabels,
		}),

		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_total",
			Help:        "Total number of dispatched state writes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		dispatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_duration_seconds",
			Help:        "Dispatch duration in seconds, cascade included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preview_clients",
			Help:        "Number of connected preview clients",
			ConstLabels: config.ConstLabels,
		}),

		snapshots: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "snapshots_total",
			Help:        "Total number of snapshot writes",
			ConstLabels: config.ConstLabels,
		}, []string{"sink", "status"}),
	}
}

// ReactiveHooks returns hooks for reactive.WithHooks.
func (c *Collector) ReactiveHooks() reactive.Hooks {
	if c == nil {
		return reactive.Hooks{}
	}
	return reactive.Hooks{
		OnNotify: func(_ uint64, subscribers int) {
			c.notifications.Inc()
			c.subscribers.Observe(float64(subscribers))
		},
		OnRecompute: func(_ uint64, changed bool) {
			if changed {
				c.recomputes.WithLabelValues("true").Inc()
				return
			}
			c.recomputes.WithLabelValues("false").Inc()
		},
	}
}

// RenderHooks returns hooks for vdom.WithHooks.
func (c *Collector) RenderHooks() vdom.Hooks {
	if c == nil {
		return vdom.Hooks{}
	}
	return vdom.Hooks{
		OnRealize: func(n *vdom.VNode) {
			c.realized.WithLabelValues(n.Kind().String()).Inc()
		},
		OnPatch: func(*vdom.VNode) {
			c.patched.Inc()
		},
		OnReplace: func(_, _ *vdom.VNode) {
			c.replaced.Inc()
		},
	}
}

// RecordDispatch records one dispatched write.
func (c *Collector) RecordDispatch(d time.Duration, err error) {
	if c == nil {
		return
	}
	c.dispatchDuration.Observe(d.Seconds())
	c.dispatches.WithLabelValues(status(err)).Inc()
}

// ClientConnected records a preview client connecting.
func (c *Collector) ClientConnected() {
	if c != nil {
		c.clients.Inc()
	}
}

// ClientDisconnected records a preview client leaving.
func (c *Collector) ClientDisconnected() {
	if c != nil {
		c.clients.Dec()
	}
}

// RecordSnapshot records one snapshot write to sink.
func (c *Collector) RecordSnapshot(sink string, err error) {
	if c != nil {
		c.snapshots.WithLabelValues(sink, status(err)).Inc()
	}
}

// Handler serves the gathered metrics. A nil Collector serves 404.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
