package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

// Backend calls issued through the gateway.
var (
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total backend requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	GatewayDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of backend requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	ActivityEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_events_total",
			Help: "Admin activity events by type and result",
		},
		[]string{"event", "result"},
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(GatewayRequests)
	prometheus.MustRegister(GatewayDuration)
	prometheus.MustRegister(ActivityEvents)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
