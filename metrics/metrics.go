// Package metrics defines the Prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VotesCast = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poll_votes_cast_total",
			Help: "Total number of votes recorded",
		},
	)

	// reason: not_found, expired, already_voted, integrity_conflict, invalid_option
	VotesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poll_votes_rejected_total",
			Help: "Total number of vote attempts rejected, by reason",
		},
		[]string{"reason"},
	)

	PollsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poll_polls_created_total",
			Help: "Total number of polls created",
		},
	)

	PollToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poll_status_toggles_total",
			Help: "Total number of poll status changes, by resulting state",
		},
		[]string{"state"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poll_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"method", "route", "status"},
	)
)
