// Package metrics provides Prometheus metrics collection for the cart service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PricingPassesTotal counts pricing passes by number of promotion groups.
	PricingPassesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_pricing_passes_total",
			Help: "Total number of cart pricing passes",
		},
		[]string{"groups"},
	)

	// PricingDuration tracks how long a pricing pass takes.
	PricingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cart_pricing_duration_seconds",
			Help:    "Cart pricing duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	// CartOperationsTotal tracks cart mutations and reads by outcome.
	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of cart operations",
		},
		[]string{"operation", "status"},
	)

	// StockRejectionsTotal counts add or update requests refused for lack of stock.
	StockRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_stock_rejections_total",
			Help: "Total number of cart changes rejected for insufficient stock",
		},
	)

	// CatalogRefreshTotal tracks product refreshes against the catalog.
	CatalogRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_catalog_refresh_total",
			Help: "Total number of cart refreshes from the product catalog",
		},
		[]string{"result"},
	)

	// CartEventsTotal tracks cart change notifications.
	CartEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_events_total",
			Help: "Total number of published cart events",
		},
		[]string{"type", "result"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// CircuitBreakerState exposes the state of each circuit breaker (0 closed, 1 half-open, 2 open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// LogEntriesTotal counts persisted log entries by outcome (written, dropped, failed).
	LogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "log_entries_total",
			Help: "Total number of log entries handled by the async log writer",
		},
		[]string{"result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordPricing records one pricing pass.
func RecordPricing(duration time.Duration, groups int) {
	PricingDuration.Observe(duration.Seconds())
	label := strconv.Itoa(groups)
	if groups > 5 {
		label = "5+"
	}
	PricingPassesTotal.WithLabelValues(label).Inc()
}

// RecordCartOperation records the outcome of a cart operation.
func RecordCartOperation(operation, status string) {
	CartOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordStockRejection counts a change refused for insufficient stock.
func RecordStockRejection() {
	StockRejectionsTotal.Inc()
}

// RecordCatalogRefresh records a catalog refresh result ("success", "error", "skipped").
func RecordCatalogRefresh(result string) {
	CatalogRefreshTotal.WithLabelValues(result).Inc()
}

// RecordCartEvent records a cart event publish attempt.
func RecordCartEvent(eventType, result string) {
	CartEventsTotal.WithLabelValues(eventType, result).Inc()
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

// SetCircuitBreakerState publishes the numeric state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordLogEntry counts one async log entry outcome.
func RecordLogEntry(result string) {
	LogEntriesTotal.WithLabelValues(result).Inc()
}
