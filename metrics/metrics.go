package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ServeDirRequests counts directory server requests by their outcome
	ServeDirRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "servedir_directory_requests_total",
		Help: "The total number of requests handled by a directory server, by outcome",
	}, []string{"outcome"})

	// ServeDirFileSize records the size of the files served to clients
	ServeDirFileSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "servedir_served_file_size_bytes",
		Help: "The size in bytes of the files served by a directory server",
		Buckets: []float64{
			1024,             /* 1KiB */
			64 * 1024,        /* 64KiB */
			512 * 1024,       /* 512KiB */
			1024 * 1024,      /* 1MiB */
			16 * 1024 * 1024, /* 16MiB */
			64 * 1024 * 1024, /* 64MiB */
		},
	})

	// VFSOperations metric for VFS operations (stat, open)
	VFSOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "servedir_vfs_operations_total",
		Help: "The number of VFS operations",
	}, []string{"vfs_name", "operation", "success"})

	// RateLimitSourceIPCacheRequests is the number of cache hits/misses
	RateLimitSourceIPCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "servedir_rate_limit_source_ip_cache_requests",
		Help: "The number of source_ip cache hits/misses in the rate limiter",
	}, []string{"op", "cache"})

	// RateLimitSourceIPCachedEntries is the number of entries in the cache
	RateLimitSourceIPCachedEntries = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "servedir_rate_limit_source_ip_cached_entries",
		Help: "The number of entries in the source_ip cache of the rate limiter",
	}, []string{"op"})

	// LimitListenerMaxConns is the maximum number of connections the listeners share
	LimitListenerMaxConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "servedir_limit_listener_max_conns",
		Help: "The maximum number of concurrent connections allowed across the HTTP and proxy listeners",
	})

	// LimitListenerConcurrentConns is the number of connections currently held by the listeners
	LimitListenerConcurrentConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "servedir_limit_listener_concurrent_conns",
		Help: "The number of concurrent connections across the HTTP and proxy listeners",
	})

	// LimitListenerWaitingConns is the number of connections waiting for a free slot
	LimitListenerWaitingConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "servedir_limit_listener_waiting_conns",
		Help: "The number of connections waiting for a slot across the HTTP and proxy listeners",
	})

	// RejectedRequestsCount is the number of requests rejected because of an unknown HTTP method
	RejectedRequestsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "servedir_unknown_method_rejected_requests",
		Help: "The number of requests with unknown HTTP method which were rejected",
	})

	// RateLimitSourceIPBlockedCount is the number of source IPs that have been blocked
	RateLimitSourceIPBlockedCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "servedir_rate_limit_source_ip_blocked_count",
		Help: "The number of requests blocked by the source IP rate limiter",
	})
)

// MustRegister collectors with the Prometheus client
func MustRegister() {
	prometheus.MustRegister(
		ServeDirRequests,
		ServeDirFileSize,
		VFSOperations,
		RateLimitSourceIPCacheRequests,
		RateLimitSourceIPCachedEntries,
		RateLimitSourceIPBlockedCount,
		RejectedRequestsCount,
		LimitListenerMaxConns,
		LimitListenerConcurrentConns,
		LimitListenerWaitingConns,
	)
}
