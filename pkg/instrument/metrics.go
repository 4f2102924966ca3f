package instrument

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/reactive/pkg/reactive"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "reactive").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for notification duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
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
		Namespace: "reactive",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a reactive.Observer that records engine activity.
type Metrics struct {
	signalsCreated    *prometheus.CounterVec
	effectsRegistered prometheus.Counter
	notifications     prometheus.Counter
	effectInvocations prometheus.Counter
	rejections        *prometheus.CounterVec
	notifyDuration    prometheus.Histogram
	scannedEffects    prometheus.Histogram
}

// Prometheus creates an observer that registers its metrics with the
// configured registry.
//
// Metrics collected:
//   - reactive_signals_created_total: Counter of signals by kind
//   - reactive_effects_registered_total: Counter of registered effects
//   - reactive_notifications_total: Counter of notification passes
//   - reactive_effect_invocations_total: Counter of effect callback runs
//   - reactive_rejections_total: Counter of failed operations by kind
//   - reactive_notify_duration_seconds: Histogram of pass duration
//   - reactive_notify_scanned_effects: Histogram of effects scanned per pass
//
// Registering twice against the same registry panics, as with promauto.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		signalsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "signals_created_total",
			Help:        "Total number of signals created",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		effectsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effects_registered_total",
			Help:        "Total number of effects registered",
			ConstLabels: config.ConstLabels,
		}),

		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of notification passes",
			ConstLabels: config.ConstLabels,
		}),

		effectInvocations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_invocations_total",
			Help:        "Total number of effect callback invocations",
			ConstLabels: config.ConstLabels,
		}),

		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rejections_total",
			Help:        "Total number of rejected operations",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		notifyDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notify_duration_seconds",
			Help:        "Notification pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		scannedEffects: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notify_scanned_effects",
			Help:        "Number of effects examined per notification pass",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
		}),
	}
}

// SignalCreated implements reactive.Observer.
func (m *Metrics) SignalCreated(_ reactive.ID, kind reactive.Kind) {
	m.signalsCreated.WithLabelValues(kind.String()).Inc()
}

// EffectRegistered implements reactive.Observer.
func (m *Metrics) EffectRegistered(reactive.ID, []reactive.ID) {
	m.effectsRegistered.Inc()
}

// Notified implements reactive.Observer.
func (m *Metrics) Notified(_ reactive.ID, scanned, invoked int, _ time.Time, elapsed time.Duration) {
	m.notifications.Inc()
	m.effectInvocations.Add(float64(invoked))
	m.notifyDuration.Observe(elapsed.Seconds())
	m.scannedEffects.Observe(float64(scanned))
}

// Rejected implements reactive.Observer.
func (m *Metrics) Rejected(_ reactive.ID, err error) {
	m.rejections.WithLabelValues(rejectionKind(err)).Inc()
}

// rejectionKind returns a low-cardinality label for err.
func rejectionKind(err error) string {
	switch {
	case errors.Is(err, reactive.ErrReadOnly):
		return "read_only"
	case errors.Is(err, reactive.ErrEmptyWatchSet):
		return "empty_watch_set"
	case errors.Is(err, reactive.ErrNilWatch):
		return "nil_watch"
	default:
		return "other"
	}
}
