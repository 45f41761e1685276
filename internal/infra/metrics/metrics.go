// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	domainerrors "finsync/internal/domain/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "finsync"

// OutcomeSuccess labels events that completed without error.
const OutcomeSuccess = "success"

// Metrics owns a private registry so tests and multiple binaries never collide on the default one.
type Metrics struct {
	registry *prometheus.Registry

	httpDuration   *prometheus.HistogramVec
	authEvents     *prometheus.CounterVec
	sessionsPurged prometheus.Counter
	mailDeliveries *prometheus.CounterVec
}

// New registers every collector, including the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		authEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "events_total",
			Help:      "Account lifecycle operations by outcome. Failures are labelled with their error kind.",
		}, []string{"event", "outcome"}),
		sessionsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "sessions_purged_total",
			Help:      "Expired or revoked refresh tokens deleted by the sweeper.",
		}),
		mailDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mail",
			Name:      "deliveries_total",
			Help:      "Verification mails handled by the mail worker.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpDuration,
		m.authEvents,
		m.sessionsPurged,
		m.mailDeliveries,
	)

	return m
}

// ObserveHTTP records one served request. route is the matched pattern, never the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// AuthEvent counts one account lifecycle operation.
func (m *Metrics) AuthEvent(event string, err error) {
	m.authEvents.WithLabelValues(event, outcome(err)).Inc()
}

// SessionsPurged adds n deleted refresh tokens.
func (m *Metrics) SessionsPurged(n int64) {
	if n > 0 {
		m.sessionsPurged.Add(float64(n))
	}
}

// MailDelivery counts one mail worker attempt.
func (m *Metrics) MailDelivery(err error) {
	m.mailDeliveries.WithLabelValues(outcome(err)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}

	return string(domainerrors.KindOf(err))
}
