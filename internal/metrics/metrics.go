// Package metrics exposes Prometheus collectors for weather resolution and
// the notifications it produces.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-dashboard/internal/notification"
)

const namespace = "weather_dashboard"

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry      *prometheus.Registry
	resolves      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	stale         prometheus.Counter
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolves_total",
			Help:      "Location resolutions by outcome (hit, fallback, failure).",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Time spent resolving a location, including simulated latency.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 1.5, 2, 5},
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "User-facing notifications emitted by kind.",
		}, []string{"kind"}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_discarded_total",
			Help:      "Resolutions completed after a newer search was started.",
		}),
	}

	m.registry.MustRegister(
		m.resolves,
		m.duration,
		m.notifications,
		m.stale,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveResolve records one resolution outcome.
func (m *Metrics) ObserveResolve(outcome string, seconds float64) {
	m.resolves.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(seconds)
}

// ObserveStale records a discarded out-of-date resolution.
func (m *Metrics) ObserveStale() {
	m.stale.Inc()
}

// CountNotifications drains ch, counting by kind, until ch is closed.
func (m *Metrics) CountNotifications(ch <-chan notification.Notification) {
	for n := range ch {
		m.notifications.WithLabelValues(string(n.Kind)).Inc()
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
