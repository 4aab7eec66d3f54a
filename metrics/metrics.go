// Package metrics provides Prometheus instrumentation for the routes service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EvaluationsTotal counts route evaluations, partitioned by delivery mode.
	EvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routes_evaluations_total",
		Help: "Total number of route evaluations",
	}, []string{"delivery_mode"})

	// EvaluationQuotes tracks how many providers survived filtering per evaluation.
	EvaluationQuotes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "routes_evaluation_quotes",
		Help:    "Number of quotes produced per evaluation",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 6},
	})

	// WinnerSelectionsTotal counts winner picks, partitioned by ranking criterion.
	WinnerSelectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routes_winner_selections_total",
		Help: "Total number of winner selections per ranking criterion",
	}, []string{"criterion"})

	// IngestFetchesTotal counts provider fetch attempts, partitioned by provider and outcome.
	IngestFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routes_ingest_fetches_total",
		Help: "Total number of rate provider fetch attempts",
	}, []string{"provider", "status"})

	// SnapshotsSavedTotal counts rate snapshots persisted to storage.
	SnapshotsSavedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routes_snapshots_saved_total",
		Help: "Total number of rate snapshots saved",
	}, []string{"source", "kind"})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routes_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "routes_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Use the URL path for the path label; the route surface is small
		// and fixed, so cardinality stays bounded.
		path := r.URL.Path
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
