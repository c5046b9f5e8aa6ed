// Package metrics exposes Prometheus collectors for quote computations and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "printquote"

// Computation labels.
const (
	OpSummary  = "summary"
	OpOptimize = "optimize"
	OpInverse  = "inverse"
)

// Metrics owns a private registry so several servers can coexist in one process.
type Metrics struct {
	registry     *prometheus.Registry
	computations *prometheus.CounterVec
	quoteTotals  prometheus.Histogram
	inverseSaved prometheus.Gauge
	requests     *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Pricing computations performed, by operation.",
		}, []string{"operation"}),
		quoteTotals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quote_estimated_total",
			Help:      "Estimated total cost of computed quotes.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}),
		inverseSaved: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inverse_quotes_stored",
			Help:      "Inverse quotes persisted in the database.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}

	m.registry.MustRegister(
		m.computations,
		m.quoteTotals,
		m.inverseSaved,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveComputation counts one computation of the given operation.
func (m *Metrics) ObserveComputation(op string) {
	m.computations.WithLabelValues(op).Inc()
}

// ObserveQuoteTotal records the estimated total of a computed quote.
func (m *Metrics) ObserveQuoteTotal(total float64) {
	m.quoteTotals.Observe(total)
}

// SetInverseQuotesStored sets the stored inverse quote count, typically from the database at startup.
func (m *Metrics) SetInverseQuotesStored(n int) {
	m.inverseSaved.Set(float64(n))
}

// InverseQuoteStored counts one newly persisted inverse quote.
func (m *Metrics) InverseQuoteStored() {
	m.inverseSaved.Inc()
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
