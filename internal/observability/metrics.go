// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CacheLookups counts cache lookups by key family and result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_cache_lookups_total",
		Help: "Total number of cache lookups by result",
	}, []string{"family", "result"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quill_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// StoreOperations counts entity store operations by entity, operation and outcome.
	StoreOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_store_operations_total",
		Help: "Total number of entity store operations",
	}, []string{"entity", "operation", "outcome"})

	// CascadeDeletedRows counts rows removed by delete cascades, per table.
	CascadeDeletedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quill_cascade_deleted_rows_total",
		Help: "Total number of rows removed by delete cascades",
	}, []string{"table"})
)

// RecordStoreOperation increments StoreOperations.
func RecordStoreOperation(entity, operation, outcome string) {
	StoreOperations.WithLabelValues(entity, operation, outcome).Inc()
}
