package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tally_http_requests_total",
			Help: "Number of HTTP requests processed, by method, path and status.",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tally_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeAlerts = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tally_active_alerts",
			Help: "Current number of inventory alerts, by alert type.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, activeAlerts)
}

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, path string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// SetAlertCounts publishes the latest alert totals per bucket.
func SetAlertCounts(critical, lowStock, reorder int) {
	activeAlerts.WithLabelValues("critical").Set(float64(critical))
	activeAlerts.WithLabelValues("low_stock").Set(float64(lowStock))
	activeAlerts.WithLabelValues("reorder").Set(float64(reorder))
}
