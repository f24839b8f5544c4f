package server

import (
	"net/http"
	"time"

	"github.com/lmbridge/lm-proxy/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics tracks proxied request counts and upstream call durations.
//
// Metrics:
//   - <ns>_requests_total: proxied requests by route and outcome
//   - <ns>_upstream_duration_seconds: upstream call duration histogram
type metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

func newMetrics(cfg config.MetricsConfig) *metrics {
	registry := prometheus.NewRegistry()

	m := &metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "requests_total",
				Help:      "Total number of proxied requests by route and outcome",
			},
			[]string{"route", "outcome"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_duration_seconds",
				Help:      "Duration of upstream completion calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(m.requestsTotal, m.upstreamDuration)

	return m
}

func (m *metrics) count(route, outcome string) {
	m.requestsTotal.WithLabelValues(route, outcome).Inc()
}

func (m *metrics) observeUpstream(route string, d time.Duration) {
	m.upstreamDuration.WithLabelValues(route).Observe(d.Seconds())
}

// handler exposes the private registry in prometheus exposition format
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
