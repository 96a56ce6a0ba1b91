package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adaudit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "adaudit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "adaudit",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Analysis metrics
	analysisRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adaudit",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total number of analysis runs",
		},
		[]string{"operation", "status"},
	)

	analysisRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "adaudit",
			Subsystem: "analysis",
			Name:      "run_duration_seconds",
			Help:      "Duration of analysis runs in seconds",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"operation"},
	)

	anomaliesAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "adaudit",
			Subsystem: "analysis",
			Name:      "anomalies_analyzed_total",
			Help:      "Total number of anomalies fed into analysis runs",
		},
		[]string{"severity"},
	)

	worstHealthScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "adaudit",
			Subsystem: "analysis",
			Name:      "worst_health_score",
			Help:      "Health score of the most at-risk campaign in the last scheduled run",
		},
	)

	activeAnomalies = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "adaudit",
			Subsystem: "analysis",
			Name:      "active_anomalies",
			Help:      "Anomalies in the scheduler's trailing window, by severity",
		},
		[]string{"severity"},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "adaudit",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordAnalysisRun records an analysis run with its outcome and duration
func RecordAnalysisRun(operation, status string, duration time.Duration) {
	analysisRunsTotal.WithLabelValues(operation, status).Inc()
	analysisRunDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAnomaliesAnalyzed records how many anomalies of a severity
// entered an analysis run
func RecordAnomaliesAnalyzed(severity string, count int) {
	anomaliesAnalyzed.WithLabelValues(severity).Add(float64(count))
}

// SetWorstHealthScore sets the gauge for the lowest campaign health score
func SetWorstHealthScore(score float64) {
	worstHealthScore.Set(score)
}

// SetActiveAnomalies sets the gauge for anomalies by severity
func SetActiveAnomalies(severity string, count float64) {
	activeAnomalies.WithLabelValues(severity).Set(count)
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
