package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cagmock/cagmock/pkg/dataset"
)

const namespace = "cagmock"

// UnmatchedRoute labels requests no route pattern matched.
const UnmatchedRoute = "unmatched"

// Metrics holds the collectors of one server.
type Metrics struct {
	registry *prometheus.Registry

	requests           *prometheus.CounterVec
	duration           *prometheus.HistogramVec
	assignmentsCreated prometheus.Counter
	statusUpdates      prometheus.Counter
}

// New creates the collectors and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets: []float64{
				0.0005, 0.001, 0.002, 0.005,
				0.01, 0.02, 0.05,
				0.1, 0.25, 0.5, 1,
			},
		}, []string{"method", "route"}),
		assignmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_created_total",
			Help:      "Number of CAG assignments created through the API.",
		}),
		statusUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_updates_total",
			Help:      "Number of assignment records whose status was overwritten.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.assignmentsCreated,
		m.statusUpdates,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// TrackDataset registers one gauge per collection, read from stats at
// scrape time.
func (m *Metrics) TrackDataset(stats func() dataset.Stats) {
	collections := map[string]func(dataset.Stats) int{
		"clients":        func(s dataset.Stats) int { return s.Clients },
		"contracts":      func(s dataset.Stats) int { return s.Contracts },
		"operationUnits": func(s dataset.Stats) int { return s.OperationUnits },
		"assignedCAGs":   func(s dataset.Stats) int { return s.AssignedCAGs },
		"cagMappings":    func(s dataset.Stats) int { return s.CAGMappings },
	}
	for name, count := range collections {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "dataset_records",
			Help:        "Number of records per dataset collection.",
			ConstLabels: prometheus.Labels{"collection": name},
		}, func() float64 {
			return float64(count(stats()))
		}))
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = UnmatchedRoute
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AssignmentsCreated adds n to the assignment counter.
func (m *Metrics) AssignmentsCreated(n int) {
	if n > 0 {
		m.assignmentsCreated.Add(float64(n))
	}
}

// StatusUpdated adds n to the status update counter.
func (m *Metrics) StatusUpdated(n int) {
	if n > 0 {
		m.statusUpdates.Add(float64(n))
	}
}
