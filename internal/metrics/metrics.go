package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "connect_dashboard"

// Outcome labels for provider calls
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// ProviderRequests counts calls to the payments provider by operation and outcome.
var ProviderRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "provider",
		Name:      "requests_total",
		Help:      "Total number of payments provider requests",
	},
	[]string{"operation", "outcome"},
)

// ProviderLatency tracks provider round trips in seconds.
var ProviderLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Payments provider request latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	},
	[]string{"operation"},
)

// HTTPRequests counts requests served, labelled by route pattern and status code.
var HTTPRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests served",
	},
	[]string{"method", "route", "status"},
)

// IssuesTriggered counts merchant-issue requests by final status.
var IssuesTriggered = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "issues",
		Name:      "triggered_total",
		Help:      "Total number of merchant issue trigger attempts",
	},
	[]string{"status"},
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
