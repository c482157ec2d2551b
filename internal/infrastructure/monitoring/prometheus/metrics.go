package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPActiveRequests  *prometheus.GaugeVec

	// Store layer
	StoreQueryDuration *prometheus.HistogramVec
	StoreErrorsTotal   *prometheus.CounterVec

	// Record counts per entity, refreshed on scrape-adjacent paths
	RecordsTotal *prometheus.GaugeVec
}

var (
	DefaultHTTPDurationBuckets  = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultStoreDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers all metrics and returns the AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	return &AppMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path"),
		HTTPActiveRequests:  collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method"),

		StoreQueryDuration: collector.RegisterHistogram("store_query_duration_seconds", "Store operation duration", DefaultStoreDurationBuckets, "entity", "operation"),
		StoreErrorsTotal:   collector.RegisterCounter("store_errors_total", "Store operation failures", "entity", "operation"),

		RecordsTotal: collector.RegisterGauge("records_total", "Stored records per entity", "entity"),
	}
}
