// Package metrics exposes Prometheus collectors for the HTTP API and the
// question catalog.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dailycheck"

// ActiveCounter is the slice of the question store the gauge needs.
type ActiveCounter interface {
	ActiveCount() int
	Subscribe(listener func()) (unsubscribe func())
}

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	Toggles          *prometheus.CounterVec
	ActiveQuestions  prometheus.Gauge
	EventSubscribers prometheus.Gauge
}

// New builds collectors on a private registry so tests can create as many
// instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "toggles_total",
			Help:      "Question toggle requests by outcome.",
		}, []string{"result"}),
		ActiveQuestions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "active_questions",
			Help:      "Questions currently enabled in the daily journal.",
		}),
		EventSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "event_subscribers",
			Help:      "Open websocket connections listening for catalog changes.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.Toggles,
		m.ActiveQuestions,
		m.EventSubscribers,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveToggle records whether a toggle request matched a question.
func (m *Metrics) ObserveToggle(changed bool) {
	result := "changed"
	if !changed {
		result = "unknown_id"
	}
	m.Toggles.WithLabelValues(result).Inc()
}

// TrackActiveQuestions keeps the active gauge in step with the store until
// the returned stop func is called.
func (m *Metrics) TrackActiveQuestions(store ActiveCounter) (stop func()) {
	update := func() {
		m.ActiveQuestions.Set(float64(store.ActiveCount()))
	}
	stop = store.Subscribe(update)
	update()
	return stop
}
