package prometheus

import (
	"time"

	"matching-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Match workflow metrics
	MatchOperationsCounter prometheus.CounterVec

	// Suggestion generation latency
	SuggestionDuration prometheus.Histogram

	// Size of the unmatched supplier product pool
	UnmatchedProductsGauge prometheus.Gauge

	// Rows collapsed by the import deduplication pass
	DedupCollapsedCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	MatchOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Total number of match workflow operations",
		},
		[]string{"operation"},
	)

	SuggestionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_suggestion_duration_seconds",
			Help:    "Duration of suggestion generation per request",
			Buckets: prometheus.DefBuckets,
		},
	)

	UnmatchedProductsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_unmatched_supplier_products",
			Help: "Current size of the unmatched supplier product pool",
		},
	)

	DedupCollapsedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_import_rows_collapsed_total",
			Help: "Import rows dropped as duplicates of a higher-priority source",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordMatchOperation increments the counter for match workflow operations
func RecordMatchOperation(operation string) {
	MatchOperationsCounter.WithLabelValues(operation).Inc()
}

// ObserveSuggestionDuration records one suggestion-generation pass
func ObserveSuggestionDuration(startTime time.Time) {
	SuggestionDuration.Observe(time.Since(startTime).Seconds())
}

// UpdateUnmatchedProducts updates the unmatched pool gauge
func UpdateUnmatchedProducts(count int64) {
	UnmatchedProductsGauge.Set(float64(count))
}
