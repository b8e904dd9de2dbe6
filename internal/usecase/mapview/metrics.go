package mapview

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsbridge_map_events_total",
			Help: "Map coordinator input events by kind.",
		},
		[]string{"kind"},
	)

	fetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsbridge_map_fetches_total",
			Help: "Completed map fetches by result.",
		},
		[]string{"result"},
	)

	fetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsbridge_map_fetch_duration_seconds",
			Help:    "Map fetch latency.",
			Buckets: prometheus.DefBuckets,
		},
	)

	staleResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsbridge_map_stale_responses_total",
			Help: "Fetch responses discarded because a newer fetch superseded them.",
		},
	)
)

func recordEvent(kind string) {
	eventsTotal.WithLabelValues(kind).Inc()
}

func recordFetch(result string, d time.Duration) {
	fetchesTotal.WithLabelValues(result).Inc()
	fetchDuration.Observe(d.Seconds())
}

func recordStale() {
	staleResponses.Inc()
}
