package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry groups the service collectors on a private Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	UpstreamRequests *prometheus.CounterVec
	UpstreamRetries  *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	Quotes           *prometheus.CounterVec
	Placements       *prometheus.CounterVec
	QuotesPurged     prometheus.Counter
}

// NewRegistry creates and registers the upstream, quote and placement collectors.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderrelay_upstream_requests_total",
		Help: "Upstream HTTP attempts by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})
	retries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderrelay_upstream_retries_total",
		Help: "Upstream retries scheduled after a transient failure.",
	}, []string{"endpoint"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderrelay_upstream_latency_seconds",
		Help:    "Upstream attempt latency by endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderrelay_quotes_total",
		Help: "Quote pipeline runs by final state.",
	}, []string{"state"})
	placements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orderrelay_placements_total",
		Help: "Placement attempts by outcome.",
	}, []string{"outcome"})
	purged := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orderrelay_quotes_purged_total",
		Help: "Expired quotes removed by the quote sweeper.",
	})

	r.MustRegister(requests, retries, latency, quotes, placements, purged)
	return &Registry{
		reg:              r,
		UpstreamRequests: requests,
		UpstreamRetries:  retries,
		UpstreamLatency:  latency,
		Quotes:           quotes,
		Placements:       placements,
		QuotesPurged:     purged,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
