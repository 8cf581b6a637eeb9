package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records latency and failures for remote API calls.
type RequestMetrics struct {
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
	refresh  prometheus.Counter
}

// NewRequestMetrics registers the API request metrics on the provided
// registerer. A nil registerer yields a no-op collector set.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "api_request_duration_seconds",
		Help:    "Duration of remote API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "api_request_failures",
		Help: "Remote API requests that ended in an error status.",
	}, []string{"method", "route", "status"})
	refresh := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "api_token_refreshes",
		Help: "Access token refresh attempts triggered by a 401.",
	})
	reg.MustRegister(duration, failures, refresh)
	return &RequestMetrics{
		duration: duration,
		failures: failures,
		refresh:  refresh,
	}
}

// ObserveDuration records the duration of one request.
func (m *RequestMetrics) ObserveDuration(method, route string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(method), normalizeLabel(route)).Observe(duration.Seconds())
}

// IncFailure counts a request that came back with an error status.
func (m *RequestMetrics) IncFailure(method, route string, status int) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(method), normalizeLabel(route), strconv.Itoa(status)).Inc()
}

// IncRefresh counts a token refresh attempt.
func (m *RequestMetrics) IncRefresh() {
	if m == nil || m.refresh == nil {
		return
	}
	m.refresh.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
