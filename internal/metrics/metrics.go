// SPDX-License-Identifier: MIT OR Apache-2.0

// Package metrics holds the process's Prometheus collectors, served by
// internal/admin, registered against the default registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels for RequestsTotal.
const (
	OutcomeStatic   = "static"
	OutcomeProxied  = "proxied"
	OutcomeNotFound = "not_found"
)

var (
	// RequestsTotal counts served requests by how the handler resolved
	// them: a static file-backed response, a proxied upstream
	// response, or an unmatched request.
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deadmock_requests_total",
		Help: "Total number of HTTP requests served, labeled by outcome.",
	}, []string{"outcome"})

	// MatchDuration observes how long the selection algorithm takes to
	// pick a winning mapping (or decide none match).
	MatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "deadmock_match_duration_seconds",
		Help:    "Time spent selecting a mapping for an incoming request.",
		Buckets: prometheus.DefBuckets,
	})

	// MappingsLoaded reports the number of mappings currently held in
	// the store; updated on initial load and on every hot reload.
	MappingsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "deadmock_mappings_loaded",
		Help: "Number of mappings currently held in the store.",
	})

	// ReloadsTotal counts mapping-directory hot reload attempts,
	// labeled by whether the reload succeeded.
	ReloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "deadmock_mapping_reloads_total",
		Help: "Total number of mapping directory reload attempts, labeled by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(RequestsTotal, MatchDuration, MappingsLoaded, ReloadsTotal)
}
