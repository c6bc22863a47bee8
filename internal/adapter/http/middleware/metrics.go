package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"corebank/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counts and latencies.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics collection.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses account numbers in paths to keep the metric
// label cardinality bounded.
func normalizePath(path string) string {
	if rest, ok := strings.CutPrefix(path, "/accounts/"); ok && rest != "" {
		// Static sub-routes stay as-is; only numeric account segments
		// collapse.
		segment, _, _ := strings.Cut(rest, "/")
		if _, err := strconv.ParseUint(segment, 10, 64); err == nil {
			return "/accounts/:number"
		}

		return path
	}

	if rest, ok := strings.CutPrefix(path, "/transfers/"); ok && rest != "" {
		return "/transfers/:id"
	}

	return path
}
