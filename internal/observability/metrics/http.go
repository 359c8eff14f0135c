// Package metrics exposes Prometheus instrumentation for the HTTP server.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics captures low-cardinality HTTP server metrics.
type HTTPMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	inFlight        prometheus.Gauge
}

// NewHTTPMetrics registers the HTTP instruments with the given registerer.
func NewHTTPMetrics(registerer prometheus.Registerer, serviceName string) *HTTPMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	serviceName = strings.TrimSpace(serviceName)
	if serviceName == "" {
		serviceName = "ibilling"
	}
	labels := prometheus.Labels{"service": serviceName}

	m := &HTTPMetrics{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "ibilling_http_request_duration_seconds",
			Help:        "HTTP request latency by endpoint and status.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"endpoint", "status_code"}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ibilling_http_requests_total",
			Help:        "HTTP requests served.",
			ConstLabels: labels,
		}, []string{"endpoint", "status_code"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "ibilling_http_in_flight_requests",
			Help:        "HTTP requests currently being served.",
			ConstLabels: labels,
		}),
	}
	registerer.MustRegister(m.requestDuration, m.requestsTotal, m.inFlight)
	return m
}

// GinMiddleware records request duration, counts and in-flight gauge.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		endpoint := normalizeEndpoint(c.FullPath())
		m.inFlight.Inc()
		start := time.Now()
		c.Next()
		m.inFlight.Dec()

		status := strconv.Itoa(c.Writer.Status())
		m.requestDuration.WithLabelValues(endpoint, status).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(endpoint, status).Inc()
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		// Unmatched routes would explode label cardinality otherwise.
		return "unknown"
	}
	return endpoint
}
