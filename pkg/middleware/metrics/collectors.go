package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "plugin"

var (
	responseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_response_seconds",
			Help:      "http response time.",
			Buckets:   []float64{0.005, 0.05, 0.5, 1, 5, 10, 30},
		},
	)

	totalHttpRequestsFromRole = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_from_role_total", Help: "http requests from role"},
		[]string{"role"},
	)

	totalHttpRequestsToUri = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_to_uri_total", Help: "http requests to uri"},
		[]string{"code", "uri", "method"},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "http requests by code, and method"},
		[]string{"code", "method"},
	)

	invocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "invocations_total", Help: "unit invocations that produced an outcome"},
		[]string{"entrypoint", "function", "action", "success"},
	)

	hardFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "hard_failures_total", Help: "unit invocations that failed to decode or encode"},
		[]string{"entrypoint", "kind"},
	)

	invocationTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invocation_seconds",
			Help:      "unit invocation time.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"entrypoint"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequestsFromRole,
		totalHttpRequestsToUri,
		totalHttpRequests,
		invocations,
		hardFailures,
		invocationTime,
	)
}
