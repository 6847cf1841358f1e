// Package metrics provides Prometheus metrics collection for the API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "waterworks"

// Metrics owns a registry so that separate instances (one per test server,
// for example) never collide on registration.
type Metrics struct {
	Registry *prometheus.Registry
	HTTP     *HTTPMetrics
	Records  *RecordMetrics
}

// HTTPMetrics contains request-level collectors.
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// RecordMetrics contains domain collectors.
type RecordMetrics struct {
	CreatedTotal      *prometheus.CounterVec
	BillsOverdueTotal prometheus.Counter
}

// New creates and registers all collectors, including the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,
		HTTP: &HTTPMetrics{
			RequestsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: Namespace,
					Subsystem: "http",
					Name:      "requests_total",
					Help:      "Total number of HTTP requests",
				},
				[]string{"route", "method", "status"},
			),
			RequestDuration: prometheus.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: Namespace,
					Subsystem: "http",
					Name:      "request_duration_seconds",
					Help:      "Duration of HTTP requests",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"route", "method"},
			),
		},
		Records: &RecordMetrics{
			CreatedTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: Namespace,
					Name:      "records_created_total",
					Help:      "Total number of records created, by entity",
				},
				[]string{"entity"},
			),
			BillsOverdueTotal: prometheus.NewCounter(
				prometheus.CounterOpts{
					Namespace: Namespace,
					Name:      "bills_marked_overdue_total",
					Help:      "Total number of bills moved from Pending to Overdue",
				},
			),
		},
	}

	reg.MustRegister(
		m.HTTP.RequestsTotal,
		m.HTTP.RequestDuration,
		m.Records.CreatedTotal,
		m.Records.BillsOverdueTotal,
	)
	return m
}

// Handler returns an HTTP handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Created counts one new row of entity.
func (m *Metrics) Created(entity string) {
	if m == nil {
		return
	}
	m.Records.CreatedTotal.WithLabelValues(entity).Inc()
}
