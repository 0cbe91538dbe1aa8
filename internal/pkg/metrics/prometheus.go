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
			Namespace: "safeguardx",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "safeguardx",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "safeguardx",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Detection metrics
	logsAnalyzedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "safeguardx",
			Subsystem: "detection",
			Name:      "logs_analyzed_total",
			Help:      "Total number of log events analyzed",
		},
	)

	threatsDetectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "safeguardx",
			Subsystem: "detection",
			Name:      "threats_total",
			Help:      "Total number of threats detected",
		},
		[]string{"severity", "category"},
	)

	activeThreats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "safeguardx",
			Subsystem: "detection",
			Name:      "active_threats",
			Help:      "Number of currently active threats",
		},
		[]string{"severity"},
	)

	unreadAlerts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "safeguardx",
			Subsystem: "detection",
			Name:      "unread_alerts",
			Help:      "Number of unread alerts",
		},
	)

	// Response pipeline metrics
	responseTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "safeguardx",
			Subsystem: "response",
			Name:      "tasks_total",
			Help:      "Total number of response tasks executed",
		},
		[]string{"kind", "outcome"},
	)

	responseTaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "safeguardx",
			Subsystem: "response",
			Name:      "task_duration_seconds",
			Help:      "Duration of response tasks in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)

	// File scan metrics
	filesScannedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "safeguardx",
			Subsystem: "scan",
			Name:      "files_total",
			Help:      "Total number of files scanned",
		},
		[]string{"threat_level"},
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

// RecordLogAnalyzed records an analyzed log event
func RecordLogAnalyzed() {
	logsAnalyzedTotal.Inc()
}

// RecordThreatDetected records a detected threat
func RecordThreatDetected(severity, category string) {
	threatsDetectedTotal.WithLabelValues(severity, category).Inc()
}

// SetActiveThreats sets the gauge for active threats by severity
func SetActiveThreats(severity string, count float64) {
	activeThreats.WithLabelValues(severity).Set(count)
}

// SetUnreadAlerts sets the gauge for unread alerts
func SetUnreadAlerts(count float64) {
	unreadAlerts.Set(count)
}

// RecordResponseTask records a completed response task
func RecordResponseTask(kind, outcome string, duration time.Duration) {
	responseTasksTotal.WithLabelValues(kind, outcome).Inc()
	responseTaskDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordFileScanned records a scanned file by assessed threat level
func RecordFileScanned(threatLevel string) {
	filesScannedTotal.WithLabelValues(threatLevel).Inc()
}
