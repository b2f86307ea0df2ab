// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the application collectors behind one registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	storeMutations *prometheus.CounterVec
	activityLog    prometheus.Gauge
	loginAttempts  *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		storeMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esolve",
			Name:      "store_mutations_total",
			Help:      "Data store mutations by operation and whether they took effect.",
		}, []string{"operation", "applied"}),
		activityLog: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "esolve",
			Name:      "activity_log_entries",
			Help:      "Entries currently held in the activity log.",
		}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "esolve",
			Name:      "login_attempts_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "esolve",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.storeMutations,
		m.activityLog,
		m.loginAttempts,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveMutation counts one store mutation
func (m *Metrics) ObserveMutation(operation string, applied bool) {
	if m == nil {
		return
	}
	m.storeMutations.WithLabelValues(operation, strconv.FormatBool(applied)).Inc()
}

// SetActivityLogSize records the current activity log length
func (m *Metrics) SetActivityLogSize(n int) {
	if m == nil {
		return
	}
	m.activityLog.Set(float64(n))
}

// ObserveLogin counts one login attempt with its result label
func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.loginAttempts.WithLabelValues(result).Inc()
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
