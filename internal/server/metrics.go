package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of the HTTP service.
//
// Metrics:
//   - numerik_http_requests_total: requests by route, method and status
//   - numerik_http_request_duration_seconds: latency by route
//   - numerik_results_total: calculation results by operation and validity
//   - numerik_cache_hits_total / numerik_cache_misses_total: evaluation cache
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	resultsTotal    *prometheus.CounterVec
}

// NewMetrics registers all collectors on a fresh registry. cacheStats feeds
// the cache counters at scrape time and may be nil.
func NewMetrics(cacheStats func() (hits, misses int64, hitRate float64)) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "numerik",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "numerik",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"route"},
		),
		resultsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "numerik",
				Name:      "results_total",
				Help:      "Calculation results by operation and validity",
			},
			[]string{"op", "valid"},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.resultsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if cacheStats != nil {
		m.registry.MustRegister(
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: "numerik",
				Name:      "cache_hits_total",
				Help:      "Expression cache hits",
			}, func() float64 {
				hits, _, _ := cacheStats()
				return float64(hits)
			}),
			prometheus.NewCounterFunc(prometheus.CounterOpts{
				Namespace: "numerik",
				Name:      "cache_misses_total",
				Help:      "Expression cache misses",
			}, func() float64 {
				_, misses, _ := cacheStats()
				return float64(misses)
			}),
		)
	}
	return m
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveResult records whether a calculation produced a value
func (m *Metrics) ObserveResult(op string, valid bool) {
	m.resultsTotal.WithLabelValues(op, strconv.FormatBool(valid)).Inc()
}

// Handler exposes the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
