package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Core request/hit/miss counters
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Total number of cache requests",
		},
		[]string{"cache_type"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Degraded-mode serves after a failed refresh
	CacheStaleServes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_stale_serves_total",
			Help: "Total number of responses served from expired cache entries",
		},
		[]string{"cache_type"},
	)

	CacheFallbackServes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_fallback_serves_total",
			Help: "Total number of responses served from static fallback data",
		},
		[]string{"cache_type"},
	)

	// Entry counts by freshness, refreshed after each sweep
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of cache entries by state",
		},
		[]string{"cache_type", "state"}, // state is "valid" or "expired"
	)

	CacheSweepRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_sweep_removed_total",
			Help: "Total number of entries removed by staleness sweeps",
		},
		[]string{"cache_type"},
	)

	// Upstream provider calls
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream provider requests",
		},
		[]string{"provider", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream provider requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// Portfolio ledger activity
	LedgerTrades = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_trades_total",
			Help: "Total number of portfolio trades",
		},
		[]string{"side", "outcome"},
	)

	// HTTP server latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "code"},
	)
)

// RecordCacheRequest records a cache request
func RecordCacheRequest(cacheType string) {
	CacheRequests.WithLabelValues(cacheType).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit(cacheType string) {
	CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(cacheType string) {
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheStaleServe records a response served from an expired entry
func RecordCacheStaleServe(cacheType string) {
	CacheStaleServes.WithLabelValues(cacheType).Inc()
}

// RecordCacheFallbackServe records a response served from static fallback data
func RecordCacheFallbackServe(cacheType string) {
	CacheFallbackServes.WithLabelValues(cacheType).Inc()
}

// UpdateCacheEntries updates the per-state entry gauges for one cache
func UpdateCacheEntries(cacheType string, valid, expired int) {
	CacheEntries.WithLabelValues(cacheType, "valid").Set(float64(valid))
	CacheEntries.WithLabelValues(cacheType, "expired").Set(float64(expired))
}

// RecordSweep records entries removed by a staleness sweep
func RecordSweep(cacheType string, removed int) {
	CacheSweepRemoved.WithLabelValues(cacheType).Add(float64(removed))
}

// RecordUpstreamRequest records the outcome of an upstream provider call
func RecordUpstreamRequest(provider, outcome string) {
	UpstreamRequests.WithLabelValues(provider, outcome).Inc()
}

// TimeUpstreamRequest returns a timer function for measuring an upstream call
func TimeUpstreamRequest(provider string) func() {
	timer := prometheus.NewTimer(UpstreamRequestDuration.WithLabelValues(provider))
	return func() {
		timer.ObserveDuration()
	}
}

// RecordTrade records a buy or sell attempt against the ledger
func RecordTrade(side, outcome string) {
	LedgerTrades.WithLabelValues(side, outcome).Inc()
}

// ObserveHTTPRequest records the duration of one handled HTTP request
func ObserveHTTPRequest(route, method, code string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(route, method, code).Observe(seconds)
}
