package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by the business counters.
const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farfinder_http_requests_total",
			Help: "Total HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "farfinder_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "farfinder_http_requests_in_flight",
			Help: "HTTP requests currently being served",
		},
	)
)

// Business Metrics
var (
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farfinder_transfers_total",
			Help: "Pool transfers by direction and outcome",
		},
		[]string{"direction", "outcome"},
	)

	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farfinder_purchases_total",
			Help: "Shop purchases by outcome",
		},
		[]string{"outcome"},
	)

	CharactersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "farfinder_characters_registered_total",
			Help: "Characters registered since start",
		},
	)

	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farfinder_status_transitions_total",
			Help: "Character status transitions by target status",
		},
		[]string{"status"},
	)

	TokensSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "farfinder_tokens_spent_total",
			Help: "Tokens spent in the shop",
		},
	)
)
