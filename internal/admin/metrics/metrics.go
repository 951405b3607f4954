// Package metrics owns the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"finitefield.org/roster-admin/internal/admin/observability"
)

const namespace = "report_admin"

// Mapping action results.
const (
	ResultSuccess  = "success"
	ResultConflict = "conflict"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

var mappingResults = []string{ResultSuccess, ResultConflict, ResultNotFound, ResultInvalid, ResultError}

// Registry bundles the admin collectors on a private registry.
type Registry struct {
	registry       *prometheus.Registry
	mappingActions *prometheus.CounterVec
	exports        *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		registry: reg,
		mappingActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mapping_actions_total",
			Help:      "Add-employee-to-report attempts by result.",
		}, []string{"result"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Mapping exports served by format.",
		}, []string{"format"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "code"}),
	}
	reg.MustRegister(
		r.mappingActions,
		r.exports,
		r.requestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Zero-initialise so rate() works before the first event.
	for _, result := range mappingResults {
		r.mappingActions.WithLabelValues(result).Add(0)
	}
	return r
}

// MappingAction counts one add-to-report attempt.
func (r *Registry) MappingAction(result string) {
	if r == nil {
		return
	}
	r.mappingActions.WithLabelValues(result).Inc()
}

// Export counts one served export.
func (r *Registry) Export(format string) {
	if r == nil {
		return
	}
	r.exports.WithLabelValues(format).Inc()
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler serves the exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware observes request latency labelled by chi route pattern.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := observability.NewResponseRecorder(w)
		next.ServeHTTP(rec, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		r.requestLatency.WithLabelValues(route, strconv.Itoa(rec.Status())).Observe(time.Since(start).Seconds())
	})
}
