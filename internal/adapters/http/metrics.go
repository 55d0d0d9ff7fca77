package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "rcupdate"

// Metrics collects counters for the inspection API. Each instance carries
// its own prometheus registry so servers can be created independently.
type Metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	registryErrors prometheus.Counter
}

// NewMetrics creates and registers the API metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "The number of requests served, by route.",
			}, []string{"route"},
		),
		registryErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "registry_errors_total",
				Help:      "The number of registry read failures while serving requests.",
			},
		),
	}
	m.registry.MustRegister(m.requests, m.registryErrors)
	return m
}

// Handler exposes the metrics in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
