// Package monitoring provides Prometheus metrics collection.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	queriesTotal    *prometheus.CounterVec
	queryDuration   prometheus.Histogram
	cartLineAdds    prometheus.Counter
	checkoutsTotal  prometheus.Counter
	orderTotalUnits prometheus.Histogram
}

// NewMetricsCollector creates a new metrics collector with its own registry
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()

	m := &MetricsCollector{
		logger:   logger.Named("metrics"),
		registry: registry,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		queriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipe_queries_total",
				Help: "Total recipe queries by outcome",
			},
			[]string{"outcome"},
		),
		queryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recipe_query_duration_seconds",
				Help:    "Recipe query round trip duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		cartLineAdds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cart_line_adds_total",
				Help: "Total brand offers added to carts",
			},
		),
		checkoutsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "checkouts_total",
				Help: "Total confirmed checkouts",
			},
		),
		orderTotalUnits: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "order_total_units",
				Help:    "Order totals in whole currency units",
				Buckets: prometheus.ExponentialBuckets(50, 2, 8),
			},
		),
	}

	registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.queriesTotal,
		m.queryDuration,
		m.cartLineAdds,
		m.checkoutsTotal,
		m.orderTotalUnits,
	)

	return m
}

// Handler exposes the metrics endpoint
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records per-request HTTP metrics
func (m *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		m.httpRequestsTotal.WithLabelValues(
			r.Method, r.URL.Path, strconv.Itoa(recorder.status),
		).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).
			Observe(time.Since(start).Seconds())
	})
}

// RecordQuery records one recipe query outcome
func (m *MetricsCollector) RecordQuery(outcome string, duration time.Duration) {
	m.queriesTotal.WithLabelValues(outcome).Inc()
	m.queryDuration.Observe(duration.Seconds())
}

// RecordCartAdd records one brand offer added to a cart
func (m *MetricsCollector) RecordCartAdd() {
	m.cartLineAdds.Inc()
}

// RecordCheckout records one confirmed checkout and its total
func (m *MetricsCollector) RecordCheckout(total int) {
	m.checkoutsTotal.Inc()
	m.orderTotalUnits.Observe(float64(total))
}

// statusRecorder captures the response status code
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
