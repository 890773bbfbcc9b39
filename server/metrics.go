package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "likecontent"

// like request results
const (
	resultOK          = "ok"
	resultNoPostID    = "no_post_id"
	resultUnsupported = "unsupported_type"
	resultError       = "error"
)

// Metrics holds server prometheus collectors on a private registry
type Metrics struct {
	registry     *prometheus.Registry
	likesTotal   prometheus.Counter
	likeRequests *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// NewMetrics makes and registers server metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		likesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "likes_total",
			Help:      "Total number of likes added.",
		}),
		likeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "like_requests_total",
			Help:      "Like requests by result.",
		}, []string{"result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latency of HTTP requests by handler.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
	}

	m.registry.MustRegister(
		m.likesTotal,
		m.likeRequests,
		m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Instrument wraps a handler with latency observation under the given name
func (m *Metrics) Instrument(name string, h http.HandlerFunc) http.HandlerFunc {
	observer := m.latency.WithLabelValues(name)
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		observer.Observe(time.Since(start).Seconds())
	}
}

// likeResult counts a like request, successful ones also bump the likes total
func (m *Metrics) likeResult(result string) {
	m.likeRequests.WithLabelValues(result).Inc()
	if result == resultOK {
		m.likesTotal.Inc()
	}
}
