// Package metrics exposes Prometheus counters for source outcomes.
// Errors never reach the caller, so these counters are the operator's view of
// how often each source fails and why.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SourceOutcomes counts each source attempt by outcome
	SourceOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_source_outcomes_total",
			Help: "Storefront source attempts by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	// Resolutions counts which terminal state each request ended in
	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_resolutions_total",
			Help: "Resolved requests by request kind and winning source",
		},
		[]string{"kind", "source"},
	)

	// BreakerState reports the platform API circuit breaker state (0=closed, 1=half-open, 2=open)
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_circuit_breaker_state",
			Help: "Current state of a source circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// ObserveSource records a single source outcome
func ObserveSource(source, outcome string) {
	SourceOutcomes.WithLabelValues(source, outcome).Inc()
}

// ObserveResolution records the source that satisfied a request
func ObserveResolution(kind, source string) {
	Resolutions.WithLabelValues(kind, source).Inc()
}
