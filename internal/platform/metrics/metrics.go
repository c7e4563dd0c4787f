// Package metrics exposes Prometheus metrics for print jobs on a private
// registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "star_print"

// Job outcomes used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeUnavailable  = "unavailable"
	OutcomeTransmission = "transmission_error"
	OutcomeError        = "error"
)

// Metrics holds the print bridge's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	JobsTotal       *prometheus.CounterVec
	JobDuration     *prometheus.HistogramVec
	ConnectFailures prometheus.Counter
}

// New creates the collectors and registers them, together with the Go runtime
// and process collectors, on a new registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		JobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "jobs_total",
				Help:      "Total number of print jobs by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "job_duration_seconds",
				Help:      "Time from connecting to the printer to closing the connection",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind"},
		),

		ConnectFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "printer_connect_failures_total",
				Help:      "Total number of failed connection attempts to the printer",
			},
		),
	}

	m.registry.MustRegister(
		m.JobsTotal,
		m.JobDuration,
		m.ConnectFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveJob counts a finished job and, when it reached the printer, records
// how long it took.
func (m *Metrics) ObserveJob(kind, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.JobsTotal.WithLabelValues(kind, outcome).Inc()
	if d > 0 {
		m.JobDuration.WithLabelValues(kind).Observe(d.Seconds())
	}
}

// RecordConnectFailure counts a failed printer connection.
func (m *Metrics) RecordConnectFailure() {
	if m == nil {
		return
	}
	m.ConnectFailures.Inc()
}
