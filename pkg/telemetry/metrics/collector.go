// Package metrics provides Prometheus instrumentation for the proxy.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nimbus-hq/nimbus/pkg/config"
)

// Collector registers and records all Prometheus metrics for the proxy.
//
// Metrics:
//   - nimbus_gateway_requests_total: request count by provider, method, status
//   - nimbus_gateway_request_duration_seconds: end-to-end request duration
//   - nimbus_gateway_cache_size: current number of cached gateway configs
//   - nimbus_gateway_cache_lookups_total: cache lookups by outcome
type Collector struct {
	registry  *prometheus.Registry
	namespace string
	subsystem string

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
}

// NewCollector creates a metrics collector. If registry is nil, a fresh
// registry is used so tests never collide on duplicate registration.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "nimbus"
	}
	subsystem := cfg.Subsystem
	if subsystem == "" {
		subsystem = "gateway"
	}

	c := &Collector{
		registry:  registry,
		namespace: namespace,
		subsystem: subsystem,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of proxied requests",
			},
			[]string{"provider", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "End-to-end duration of proxied requests in seconds",
				// Upstream LLM calls routinely take seconds.
				Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"provider", "method"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cache_lookups_total",
				Help:      "Gateway config cache lookups by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(c.requestsTotal, c.requestDuration, c.cacheLookups)
	return c
}

// RecordRequest records one completed proxied request.
func (c *Collector) RecordRequest(provider, method string, status int, duration time.Duration) {
	statusLabel := strconv.Itoa(status)
	c.requestsTotal.WithLabelValues(provider, method, statusLabel).Inc()
	c.requestDuration.WithLabelValues(provider, method).Observe(duration.Seconds())
}

// RecordCacheLookup records one gateway cache lookup. Outcome should be one
// of "hit", "miss", "stale", or "error".
func (c *Collector) RecordCacheLookup(outcome string) {
	c.cacheLookups.WithLabelValues(outcome).Inc()
}

// RegisterCacheSize exposes the cache's current entry count as a gauge. The
// size function is called on every scrape.
func (c *Collector) RegisterCacheSize(size func() int) {
	c.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: c.namespace,
			Subsystem: c.subsystem,
			Name:      "cache_size",
			Help:      "Current number of cached gateway configurations",
		},
		func() float64 { return float64(size()) },
	))
}

// Handler returns the HTTP handler for the Prometheus metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
