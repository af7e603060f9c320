// Package metrics holds the prometheus collectors of the sync layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemoteRequestDuration is the latency of platform API calls in seconds.
	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crowdfund_remote_request_duration_seconds",
			Help:    "Platform API request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"method", "route", "status"},
	)

	// SyncRemoteRequests counts remote attempts made by sync operations.
	SyncRemoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crowdfund_sync_remote_requests_total",
			Help: "Remote calls made by sync operations",
		},
		[]string{"family", "op", "outcome"}, // outcome: ok, error, skipped
	)

	// SyncFallbacks counts reads answered (or not) by the local cache.
	SyncFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crowdfund_sync_fallback_total",
			Help: "Reads that fell back to the local cache",
		},
		[]string{"family", "op", "result"}, // result: hit, miss
	)

	// CacheWrites counts background cache writes.
	CacheWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crowdfund_sync_cache_writes_total",
			Help: "Background cache writes by outcome",
		},
		[]string{"family", "outcome"}, // outcome: ok, error, dropped
	)

	// WriteQueueDepth is the number of cache writes waiting for a worker.
	WriteQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "crowdfund_sync_write_queue_depth",
			Help: "Cache writes waiting in the write-back queue",
		},
	)
)

// RecordRemoteRequest records one platform API call.
func RecordRemoteRequest(method, route, status string, duration time.Duration) {
	RemoteRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// RecordRemoteOutcome records the remote leg of a sync operation.
func RecordRemoteOutcome(family, op, outcome string) {
	SyncRemoteRequests.WithLabelValues(family, op, outcome).Inc()
}

// RecordFallback records a cache fallback and whether it found data.
func RecordFallback(family, op string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	SyncFallbacks.WithLabelValues(family, op, result).Inc()
}

// RecordCacheWrite records the outcome of one background cache write.
func RecordCacheWrite(family, outcome string) {
	CacheWrites.WithLabelValues(family, outcome).Inc()
}
