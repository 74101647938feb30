package rest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cogview_api_requests_total",
			Help: "Total number of Cognitive Services requests by service and HTTP status",
		},
		[]string{"service", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cogview_api_request_duration_seconds",
			Help:    "Duration of Cognitive Services requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service"},
	)
)

// MetricsHandler serves every registered collector, including the request
// metrics above, in the Prometheus exposition format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
