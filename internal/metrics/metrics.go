// Package metrics exposes Prometheus instrumentation for the well record
// pipeline and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors registered for the application.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal       *prometheus.CounterVec
	RecordsPulledTotal  *prometheus.CounterVec
	CollectErrorsTotal  *prometheus.CounterVec
	RecordAccessSeconds *prometheus.HistogramVec
	GapSearchesTotal    *prometheus.CounterVec
}

// New creates a Metrics with its own registry. The registry also carries the
// standard Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lapsetrack",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status class.",
		}, []string{"method", "route", "status"}),
		RecordsPulledTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lapsetrack",
			Name:      "well_records_pulled_total",
			Help:      "Well records resolved, by state and source (store or collector).",
		}, []string{"state", "source"}),
		CollectErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lapsetrack",
			Name:      "collect_errors_total",
			Help:      "Failed public record collections, by state.",
		}, []string{"state"}),
		RecordAccessSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lapsetrack",
			Name:      "record_access_seconds",
			Help:      "Time spent resolving a single well record.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"state", "source"}),
		GapSearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lapsetrack",
			Name:      "gap_searches_total",
			Help:      "Group gap searches performed, by production category.",
		}, []string{"category"}),
	}
}

// Registry returns the underlying Prometheus registry for exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
