// Package prometheus exposes labstats metrics in the Prometheus text format.
package prometheus

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emiliopalmerini/labstats/internal/ports"
)

const namespace = "labstats"

// Metrics owns a private registry so tests and multiple servers never collide
// on the global default registerer.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	computations *prometheus.CounterVec
	summaries    *prometheus.CounterVec
	dataPoints   *prometheus.CounterVec
	computeTime  *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"route", "method"}),
		computations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Statistics calls by scope and outcome",
		}, []string{"scope", "failed"}),
		summaries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Statistics summaries produced by scope",
		}, []string{"scope"}),
		dataPoints: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_points_total",
			Help:      "Measurement records aggregated by scope",
		}, []string{"scope"}),
		computeTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "computation_duration_seconds",
			Help:      "Statistics call duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"scope"}),
	}
}

// Handler serves the registry at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(route, method string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ExportComputation implements ports.MetricsExporter.
func (m *Metrics) ExportComputation(_ context.Context, c *ports.ComputationMetrics) error {
	m.computations.WithLabelValues(c.Scope, strconv.FormatBool(c.Failed)).Inc()
	m.computeTime.WithLabelValues(c.Scope).Observe(c.Duration.Seconds())
	if !c.Failed {
		m.summaries.WithLabelValues(c.Scope).Add(float64(c.Summaries))
		m.dataPoints.WithLabelValues(c.Scope).Add(float64(c.DataPoints))
	}
	return nil
}

// Close is a no-op; the registry lives as long as the process.
func (m *Metrics) Close(context.Context) error {
	return nil
}
