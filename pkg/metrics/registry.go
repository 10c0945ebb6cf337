// Package metrics implements the observability hooks on top of Prometheus.
//
// A [Registry] owns its own prometheus.Registry, so tests and embedded uses
// never collide with the global default. Register it with the hook registry
// at startup and expose [Registry.Handler] on /metrics:
//
//	m := metrics.NewRegistry()
//	observability.SetLayoutHooks(m)
//	observability.SetRouteHooks(m)
//	observability.SetHTTPHooks(m)
//	mux.Handle("/metrics", m.Handler())
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric topolayout exports.
type Registry struct {
	// Layout runs
	LayoutRunsTotal       *prometheus.CounterVec
	LayoutDuration        *prometheus.HistogramVec
	LayoutNodes           *prometheus.HistogramVec
	LayoutSupersededTotal *prometheus.CounterVec
	LayoutsInFlight       prometheus.Gauge

	// Edge routing
	RoutesTotal *prometheus.CounterVec
	RoutePoints *prometheus.HistogramVec

	// HTTP API
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with all metrics initialized, plus the Go
// runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r.initLayoutMetrics()
	r.initRouteMetrics()
	r.initHTTPMetrics()
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry for tests and custom exporters.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }

func (r *Registry) initLayoutMetrics() {
	r.LayoutRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "topolayout_layout_runs_total",
			Help: "Total number of layout runs by outcome",
		},
		[]string{"strategy", "status"}, // ok, cancelled, error
	)

	r.LayoutDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "topolayout_layout_duration_seconds",
			Help:    "Layout run duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"strategy"},
	)

	r.LayoutNodes = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "topolayout_layout_nodes",
			Help:    "Number of nodes per layout run",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
		[]string{"strategy"},
	)

	r.LayoutSupersededTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "topolayout_layout_superseded_total",
			Help: "Total number of layout runs stopped by a newer run",
		},
		[]string{"strategy"},
	)

	r.LayoutsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "topolayout_layouts_in_flight",
			Help: "Current number of layout runs in progress",
		},
	)
}

func (r *Registry) initRouteMetrics() {
	r.RoutesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "topolayout_routes_total",
			Help: "Total number of computed edge paths",
		},
		[]string{"algorithm", "fallback"},
	)

	r.RoutePoints = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "topolayout_route_points",
			Help:    "Number of points per computed edge path",
			Buckets: []float64{2, 3, 4, 6, 8, 11, 16, 32},
		},
		[]string{"algorithm"},
	)
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "topolayout_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "topolayout_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}
