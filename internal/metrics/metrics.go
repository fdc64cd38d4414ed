package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/law-makers/linkresolve/internal/resolver"
)

// OutcomeResolved labels resolutions that produced a destination
const OutcomeResolved = "resolved"

// Metrics holds the collectors of one application instance on a private
// registry.
type Metrics struct {
	Registry *prometheus.Registry

	Resolutions     *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	ExportBatchSize prometheus.Histogram
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkresolve_resolutions_total",
			Help: "Destination URL computations by outcome",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkresolve_cache_lookups_total",
			Help: "Resolution cache lookups by result (hit or miss)",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkresolve_http_requests_total",
			Help: "Admin API requests by route and status code",
		}, []string{"route", "code"}),
		ExportBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "linkresolve_export_batch_size",
			Help:    "Number of records per export run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	m.Registry.MustRegister(m.Resolutions, m.CacheLookups, m.HTTPRequests, m.ExportBatchSize)
	return m
}

// Report counts a failed resolution under its failure kind
func (m *Metrics) Report(f resolver.Failure) {
	m.Resolutions.WithLabelValues(f.Kind.String()).Inc()
}

// Resolved counts a successful resolution
func (m *Metrics) Resolved() {
	m.Resolutions.WithLabelValues(OutcomeResolved).Inc()
}

// ObserveCache counts one resolution cache lookup
func (m *Metrics) ObserveCache(hit bool) {
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

// ObserveRequest counts one admin API request
func (m *Metrics) ObserveRequest(route string, code int) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
