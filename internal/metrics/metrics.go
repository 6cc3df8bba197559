// Package metrics exposes prometheus collectors for the upstream client
// and the cache layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors so instances stay isolated in tests.
type Metrics struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamRetries  prometheus.Counter
	UpstreamFailures prometheus.Counter
	CacheHits        *prometheus.CounterVec
	CacheMisses      *prometheus.CounterVec
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hourei_upstream_requests_total",
			Help: "Upstream law API requests by operation.",
		}, []string{"operation"}),
		UpstreamRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hourei_upstream_retries_total",
			Help: "Retried upstream requests.",
		}),
		UpstreamFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hourei_upstream_failures_total",
			Help: "Upstream requests that failed after retry exhaustion.",
		}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hourei_cache_hits_total",
			Help: "Cache hits by namespace.",
		}, []string{"namespace"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hourei_cache_misses_total",
			Help: "Cache misses by namespace.",
		}, []string{"namespace"}),
	}
	reg.MustRegister(m.UpstreamRequests, m.UpstreamRetries, m.UpstreamFailures, m.CacheHits, m.CacheMisses)
	return m
}

// NewUnregistered returns collectors without registering them; handy for
// tests and optional wiring.
func NewUnregistered() *Metrics {
	return New(prometheus.NewRegistry())
}
