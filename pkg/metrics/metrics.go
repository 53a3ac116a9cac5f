// Package metrics exposes prometheus instrumentation for the HTTP harness
// and for fixture invocations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	fixtureCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fixture_calls_total",
			Help: "Total number of fixture function invocations",
		},
		[]string{"function", "status"},
	)

	fixtureCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fixture_call_duration_seconds",
			Help:    "Fixture invocation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"function", "status"},
	)
)

// RecordInvocation records one fixture call. Status is "ok", "error" or
// "timeout".
func RecordInvocation(function, status string, duration time.Duration) {
	fixtureCallsTotal.WithLabelValues(function, status).Inc()
	fixtureCallDuration.WithLabelValues(function, status).Observe(duration.Seconds())
}

// Middleware records HTTP metrics per route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := strconv.Itoa(ww.Status())

		// Use the route pattern if available to avoid high cardinality.
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = r.URL.Path
		}

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(time.Since(start).Seconds())
	})
}
