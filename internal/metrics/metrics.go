// Package metrics declares the Prometheus collectors exposed at /metrics
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks request latency by route pattern
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "touristfeedback_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "touristfeedback_registrations_total",
			Help: "Total number of registration attempts by result",
		},
		[]string{"result"}, // "success", "duplicate", "error"
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "touristfeedback_logins_total",
			Help: "Total number of login attempts by role and result",
		},
		[]string{"role", "result"}, // result: "success", "invalid", "error"
	)

	FeedbackSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "touristfeedback_feedback_submitted_total",
			Help: "Total number of feedback rows submitted",
		},
	)

	FeedbackDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "touristfeedback_feedback_deleted_total",
			Help: "Total number of feedback delete requests handled",
		},
	)
)
