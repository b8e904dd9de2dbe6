package assistant

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsbridge_assistant_calls_total",
			Help: "Assistant provider calls by provider and result.",
		},
		[]string{"provider", "result"},
	)

	callDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsbridge_assistant_call_duration_seconds",
			Help:    "Assistant provider call latency.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"provider"},
	)
)

func recordCall(provider, result string, d time.Duration) {
	callsTotal.WithLabelValues(provider, result).Inc()
	callDuration.WithLabelValues(provider).Observe(d.Seconds())
}
