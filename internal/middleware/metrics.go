package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/HammerMeetNail/dailycheck/internal/metrics"
)

// RequestMetrics records request counts and latency per matched route.
type RequestMetrics struct {
	metrics *metrics.Metrics
}

func NewRequestMetrics(m *metrics.Metrics) *RequestMetrics {
	return &RequestMetrics{metrics: m}
}

func (m *RequestMetrics) Apply(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := newResponseRecorder(w)

		next.ServeHTTP(recorder, r)

		// ServeMux fills in Pattern on the request it routes. Using it keeps
		// label cardinality bounded by the route table.
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		m.metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(recorder.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
