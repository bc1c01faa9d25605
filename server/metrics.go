package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported at /metrics. Each Metrics
// owns its registry, so several servers can run in one process.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	NodesResolved       *prometheus.CounterVec
	TreeNodes           prometheus.Gauge
}

// NewMetrics creates the registry with Go runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treeguess",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "treeguess",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	m.NodesResolved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treeguess",
		Name:      "nodes_resolved_total",
		Help:      "Nodes served, by kind (question, guess, not_found)",
	}, []string{"kind"})

	m.TreeNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "treeguess",
		Name:      "tree_nodes",
		Help:      "Number of nodes in the loaded tree",
	})

	reg.MustRegister(m.HTTPRequestsTotal, m.HTTPRequestDuration, m.NodesResolved, m.TreeNodes)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observeNode(kind string) {
	if m == nil {
		return
	}
	m.NodesResolved.WithLabelValues(kind).Inc()
}
