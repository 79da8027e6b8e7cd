// Package metrics provides Prometheus metrics collection for the cargo quote service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "cargo_quote"

	// unmatchedRoute labels requests gin could not route, so arbitrary
	// paths do not create new series.
	unmatchedRoute = "unmatched"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// QuoteCalculationsTotal tracks quote calculations by outcome.
	QuoteCalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_calculations_total",
			Help:      "Total number of quote calculations",
		},
		[]string{"status"},
	)

	// QuoteCalculationDuration tracks quote calculation duration, including
	// tariff and exchange rate lookups.
	QuoteCalculationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_calculation_duration_seconds",
			Help:      "Quote calculation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// QuoteCategoriesTotal tracks successful quotes by product category.
	QuoteCategoriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_categories_total",
			Help:      "Total number of successful quotes by category",
		},
		[]string{"category"},
	)

	// TariffImportsTotal tracks tariff table imports by outcome.
	TariffImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tariff_imports_total",
			Help:      "Total number of tariff table imports",
		},
		[]string{"status"},
	)

	// ExchangeRateFallbackTotal counts quotes priced with the configured fallback rate.
	ExchangeRateFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_rate_fallback_total",
			Help:      "Total number of exchange rate lookups answered by the fallback rate",
		},
	)

	// EventsPublishedTotal tracks quote events by outcome.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of published events",
		},
		[]string{"topic", "result"},
	)

	// CircuitBreakerState reports 0 (closed), 1 (open) or 2 (half-open) per breaker.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// LogEntriesTotal tracks persisted log entries by outcome.
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "log_entries_total",
			Help:      "Total number of request and audit log entries by outcome",
		},
		[]string{"result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_size",
			Help:      "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_capacity",
			Help:      "Cache capacity",
		},
	)
)

// PrometheusMiddleware records request count and latency per route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		labels := []string{c.Request.Method, route, strconv.Itoa(c.Writer.Status())}
		HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(labels...).Inc()
	}
}

// RecordQuoteCalculation records metrics for a quote calculation.
// Status is one of success, invalid, out_of_range, no_rate or error.
func RecordQuoteCalculation(duration time.Duration, status string) {
	QuoteCalculationDuration.Observe(duration.Seconds())
	QuoteCalculationsTotal.WithLabelValues(status).Inc()
}

// RecordQuoteCategory counts a successful quote for category.
func RecordQuoteCategory(category string) {
	QuoteCategoriesTotal.WithLabelValues(category).Inc()
}

// RecordTariffImport records the outcome of a tariff import.
func RecordTariffImport(status string) {
	TariffImportsTotal.WithLabelValues(status).Inc()
}

// RecordExchangeRateFallback counts a lookup answered by the fallback rate.
func RecordExchangeRateFallback() {
	ExchangeRateFallbackTotal.Inc()
}

// RecordEventPublish records the outcome of publishing to topic.
func RecordEventPublish(topic, result string) {
	EventsPublishedTotal.WithLabelValues(topic, result).Inc()
}

// SetCircuitBreakerState records the numeric state of the named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// RecordLogEntries counts n log entries with result enqueued, dropped, written or failed.
func RecordLogEntries(result string, n int) {
	LogEntriesTotal.WithLabelValues(result).Add(float64(n))
}
