package upstream

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_calls_total",
			Help: "Total number of calls to the backend API",
		},
		[]string{"path", "result"},
	)

	upstreamCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_call_duration_seconds",
			Help:    "Backend API call duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"path"},
	)
)

// recordCall records one backend round trip. The result label is either an
// HTTP status code or a failure class (network_error, breaker_open,
// upstream_error).
func recordCall(path, result string, duration time.Duration) {
	upstreamCallsTotal.WithLabelValues(path, result).Inc()
	upstreamCallDuration.WithLabelValues(path).Observe(duration.Seconds())
}
