package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry           *prometheus.Registry
	handler            http.Handler
	requestsTotal      *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
	queryDuration      *prometheus.HistogramVec
	queryFailures      *prometheus.CounterVec
	malformedProducts  *prometheus.GaugeVec
	unrecognizedStatus prometheus.Counter
}

// NewMetrics creates a registry with all service collectors registered.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_analytics_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sales_analytics_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	queryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sales_analytics_query_duration_seconds",
		Help:    "Analytical query duration by query and outcome.",
		Buckets: prometheus.DefBuckets,
	}, []string{"query", "outcome"})
	queryFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_analytics_query_failures_total",
		Help: "Failed analytical queries by query.",
	}, []string{"query"})
	malformed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sales_analytics_malformed_products",
		Help: "Rows whose products column is present but not a JSON array, by table.",
	}, []string{"table"})
	unrecognized := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_analytics_unrecognized_status_total",
		Help: "Quotation status groups left out of the conversion buckets.",
	})

	registry.MustRegister(requests, requestDuration, queryDuration, queryFailures, malformed, unrecognized)
	return &Metrics{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:      requests,
		requestDuration:    requestDuration,
		queryDuration:      queryDuration,
		queryFailures:      queryFailures,
		malformedProducts:  malformed,
		unrecognizedStatus: unrecognized,
	}
}

// Handler returns the /metrics exposition handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Query outcomes recorded on the duration histogram.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// ObserveQuery records the duration and outcome of one analytical query. Only
// OutcomeError counts as a failure.
func (m *Metrics) ObserveQuery(query string, elapsed time.Duration, outcome string) {
	if m == nil {
		return
	}
	if outcome == OutcomeError {
		m.queryFailures.WithLabelValues(query).Inc()
	}
	m.queryDuration.WithLabelValues(query, outcome).Observe(elapsed.Seconds())
}

// SetMalformedProducts records the latest malformed products count for table.
func (m *Metrics) SetMalformedProducts(table string, count int64) {
	if m == nil {
		return
	}
	m.malformedProducts.WithLabelValues(table).Set(float64(count))
}

// AddUnrecognizedStatuses counts status groups dropped from the conversion buckets.
func (m *Metrics) AddUnrecognizedStatuses(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.unrecognizedStatus.Add(float64(n))
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
