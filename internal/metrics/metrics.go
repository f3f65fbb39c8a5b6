// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_http_requests_total",
		Help: "HTTP requests handled, by method, route, and status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pulseboard_http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	loginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_login_attempts_total",
		Help: "Login attempts, by outcome (success, failure, must_change_password).",
	}, []string{"outcome"})

	statusQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseboard_status_queries_total",
		Help: "Dashboard status queries, by view (sync, vitals, summary, weekly, monthly).",
	}, []string{"view"})
)

func ObserveRequest(method string, route string, status int, seconds float64) {
	code := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, code).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func CountLoginAttempt(outcome string) {
	loginAttemptsTotal.WithLabelValues(outcome).Inc()
}

func CountStatusQuery(view string) {
	statusQueriesTotal.WithLabelValues(view).Inc()
}
