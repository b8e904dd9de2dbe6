package listview

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsbridge_listview_cache_total",
			Help: "Listing page cache lookups by outcome.",
		},
		[]string{"outcome"},
	)

	loadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsbridge_listview_load_duration_seconds",
			Help:    "Backend listing load latency by category.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"category"},
	)
)

func recordCache(outcome string) {
	cacheOps.WithLabelValues(outcome).Inc()
}

func recordLoad(category string, d time.Duration) {
	loadDuration.WithLabelValues(category).Observe(d.Seconds())
}
