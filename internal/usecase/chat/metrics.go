package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var repliesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "newsbridge_chat_replies_total",
		Help: "Assistant replies by outcome.",
	},
	[]string{"outcome"},
)

func recordReply(outcome string) {
	repliesTotal.WithLabelValues(outcome).Inc()
}
