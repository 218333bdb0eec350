// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ResolveAttempts counts fallback-chain strategy attempts by data kind, source and outcome
// (ok, error, invalid, fallback).
var ResolveAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "market_resolve_attempts_total",
		Help: "Market data strategy attempts by kind, source and outcome",
	},
	[]string{"kind", "source", "outcome"},
)

// Cache lookups and writes
var (
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_cache_lookups_total",
			Help: "Cache lookups by store and result (hit, miss, expired, corrupt, error)",
		},
		[]string{"store", "result"},
	)

	CacheWriteErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_cache_write_errors_total",
			Help: "Failed cache writes by store",
		},
		[]string{"store"},
	)
)

// RefreshRuns counts background refresh jobs by cache key and result.
var RefreshRuns = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "market_refresh_runs_total",
		Help: "Background cache refresh runs by key and result",
	},
	[]string{"key", "result"},
)

// HTTPRequestDuration records API latency by route and status.
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "market_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)

func init() {
	prometheus.MustRegister(ResolveAttempts)
	prometheus.MustRegister(CacheLookups, CacheWriteErrors)
	prometheus.MustRegister(RefreshRuns, HTTPRequestDuration)
}
