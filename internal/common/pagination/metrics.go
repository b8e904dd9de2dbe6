package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts list requests bucketed by page depth. Deep pages
	// are rare and worth watching since every page costs an upstream call.
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsbridge_pagination_requests_total",
			Help: "Total number of paginated list requests",
		},
		[]string{"status", "page_range"},
	)

	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsbridge_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a paginated list request.
func RecordRequest(statusCode int, page int) {
	requestsTotal.WithLabelValues(strconv.Itoa(statusCode), pageRangeBucket(page)).Inc()
}

// RecordError records a pagination error.
// errorType should be one of: "validation", "upstream".
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}

func pageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	default:
		return "50+"
	}
}
