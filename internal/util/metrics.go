package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_created_total",
		Help: "Total number of products created",
	})

	ProductsUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_updated_total",
		Help: "Total number of products updated",
	})

	ProductsDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_products_deleted_total",
		Help: "Total number of products deleted",
	}, []string{"mode"})

	MutationsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_mutations_failed_total",
		Help: "Total number of failed catalog mutations",
	}, []string{"reason"})

	StockOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_stock_operations_total",
		Help: "Total number of stock adjustments by operation",
	}, []string{"operation"})

	BulkItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_bulk_items_total",
		Help: "Total number of bulk update items by outcome",
	}, []string{"outcome"})

	QueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_query_latency_seconds",
		Help:    "Latency of catalog list queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query"})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_requests_total",
		Help: "Product cache lookups by outcome",
	}, []string{"outcome"})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_events_published_total",
		Help: "Total number of catalog events published to the bus",
	}, []string{"type"})

	LowStockAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_low_stock_alerts_total",
		Help: "Total number of low stock alerts raised",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
