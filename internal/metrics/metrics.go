// Package metrics exposes generation and upstream-call metrics on a private
// Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is safe for concurrent use. A nil *Recorder records nothing.
type Recorder struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	cost        *prometheus.CounterVec
	upstream    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	degraded    *prometheus.CounterVec
	httpReqs    *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nftforge",
			Name:      "generations_total",
			Help:      "Orchestrated generations by artifact kind and outcome.",
		}, []string{"kind", "outcome"}),
		cost: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nftforge",
			Name:      "generation_cost_usd_total",
			Help:      "Estimated provider spend in USD by artifact kind.",
		}, []string{"kind"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nftforge",
			Name:      "upstream_calls_total",
			Help:      "Calls to external providers by provider and outcome.",
		}, []string{"provider", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nftforge",
			Name:      "upstream_call_duration_seconds",
			Help:      "Latency of calls to external providers.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60, 90, 120},
		}, []string{"provider"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nftforge",
			Name:      "degradations_total",
			Help:      "Inputs replaced by documented defaults, by kind and reason.",
		}, []string{"kind", "reason"}),
		httpReqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nftforge",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.generations, r.cost, r.upstream, r.latency, r.degraded, r.httpReqs,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

func (r *Recorder) RecordGeneration(kind, outcome string, costUSD float64) {
	if r == nil {
		return
	}
	r.generations.WithLabelValues(kind, outcome).Inc()
	if costUSD > 0 {
		r.cost.WithLabelValues(kind).Add(costUSD)
	}
}

// RecordUpstream records one provider call and its latency.
func (r *Recorder) RecordUpstream(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.upstream.WithLabelValues(provider, outcome).Inc()
	r.latency.WithLabelValues(provider).Observe(duration.Seconds())
}

func (r *Recorder) RecordDegraded(kind, reason string) {
	if r == nil {
		return
	}
	r.degraded.WithLabelValues(kind, reason).Inc()
}

func (r *Recorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	if r == nil {
		return
	}
	r.httpReqs.WithLabelValues(method, route, statusClass(status)).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
