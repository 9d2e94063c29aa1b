package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "crm_admin"

// Registry holds every collector exported by the service.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	authDecisions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Access guard outcomes.",
	}, []string{"outcome"})

	blockTransitions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "block_transitions_total",
		Help:      "Block and unblock attempts by target role and outcome.",
	}, []string{"action", "role", "outcome"})

	timeTrackingEvents = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "time_tracking_events_total",
		Help:      "Time tracking session starts and ends by outcome.",
	}, []string{"event", "outcome"})

	blobOperations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blob_operations_total",
		Help:      "Profile image operations by category and outcome.",
	}, []string{"operation", "category", "outcome"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// IncAuthDecision counts an access guard outcome.
func IncAuthDecision(outcome string) {
	authDecisions.WithLabelValues(outcome).Inc()
}

// IncBlockTransition counts a block state machine attempt.
func IncBlockTransition(action, role, outcome string) {
	blockTransitions.WithLabelValues(action, role, outcome).Inc()
}

// IncTimeTracking counts a session start or end.
func IncTimeTracking(event, outcome string) {
	timeTrackingEvents.WithLabelValues(event, outcome).Inc()
}

// IncBlobOperation counts an upload, download or delete.
func IncBlobOperation(operation, category, outcome string) {
	blobOperations.WithLabelValues(operation, category, outcome).Inc()
}

// Outcome maps an error to a low-cardinality label.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}
	return "failure"
}
