package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// alert engine.
type Metrics struct {
	EventsConsumed  *prometheus.CounterVec // labels: hazard
	MalformedEvents *prometheus.CounterVec // labels: hazard
	EventsDiscarded *prometheus.CounterVec // labels: hazard (below worthiness gate)
	AlertsCreated   *prometheus.CounterVec // labels: hazard, severity
	AlertsPublished *prometheus.CounterVec // labels: channel
	PublishFailures *prometheus.CounterVec // labels: channel
	StoreErrors     prometheus.Counter

	HandleDuration   *prometheus.HistogramVec // labels: hazard
	ConsumersRunning prometheus.Gauge
}

// NewMetrics creates and registers all alert engine metrics with the
// default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.EventsConsumed,
		m.MalformedEvents,
		m.EventsDiscarded,
		m.AlertsCreated,
		m.AlertsPublished,
		m.PublishFailures,
		m.StoreErrors,
		m.HandleDuration,
		m.ConsumersRunning,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// parallel tests avoid "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		EventsConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alert_engine",
			Name:      "events_consumed_total",
			Help:      "Raw hazard events read from source topics.",
		}, []string{"hazard"}),
		MalformedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alert_engine",
			Name:      "malformed_events_total",
			Help:      "Events dropped because a required field was missing.",
		}, []string{"hazard"}),
		EventsDiscarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alert_engine",
			Name:      "events_discarded_total",
			Help:      "Events below the alert-worthiness gate for their hazard.",
		}, []string{"hazard"}),
		AlertsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alert_engine",
			Name:      "alerts_created_total",
			Help:      "Alerts persisted to the store.",
		}, []string{"hazard", "severity"}),
		AlertsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alert_engine",
			Name:      "alerts_published_total",
			Help:      "Alerts published downstream, by channel.",
		}, []string{"channel"}),
		PublishFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alert_engine",
			Name:      "publish_failures_total",
			Help:      "Channel publish attempts that failed after a successful persist.",
		}, []string{"channel"}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "alert_engine",
			Name:      "store_errors_total",
			Help:      "Alert store writes rejected by the backing medium.",
		}),
		HandleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "alert_engine",
			Name:      "handle_duration_seconds",
			Help:      "Duration of one classify-persist-publish cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"hazard"}),
		ConsumersRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "alert_engine",
			Name:      "consumers_running",
			Help:      "Number of hazard stream consumers currently active.",
		}),
	}
}
