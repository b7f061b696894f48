// Package metrics provides Prometheus metrics for the viewer.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all Prometheus collectors of the viewer.
type Metrics struct {
	// Upstream API metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec
	UpstreamCacheHitsTotal  *prometheus.CounterVec

	// Page metrics
	PageRendersTotal      *prometheus.CounterVec
	SupersededLoadsTotal  prometheus.Counter
	DisplayTogglesTotal   prometheus.Counter
	QuerySubmissionsTotal *prometheus.CounterVec

	// Session metrics
	SessionsActive  prometheus.Gauge
	SessionsEvicted prometheus.Counter

	registry *prometheus.Registry
}

// New creates the collectors and registers them on a fresh registry, so tests
// and multiple servers in one process do not collide.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legisview_upstream_requests_total",
			Help: "Total number of requests sent to the archive API",
		},
		[]string{"endpoint", "status"},
	)
	m.UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "legisview_upstream_request_duration_seconds",
			Help:    "Duration of archive API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	m.UpstreamCacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legisview_upstream_cache_hits_total",
			Help: "Archive payloads served from the document cache",
		},
		[]string{"endpoint"},
	)
	m.PageRendersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legisview_page_renders_total",
			Help: "Pages rendered by page and outcome",
		},
		[]string{"page", "state"},
	)
	m.SupersededLoadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "legisview_superseded_loads_total",
		Help: "Search loads discarded because a newer navigation started",
	})
	m.DisplayTogglesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "legisview_display_toggles_total",
		Help: "Text/image display mode toggles",
	})
	m.QuerySubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "legisview_query_submissions_total",
			Help: "Search query submissions by producer",
		},
		[]string{"producer"},
	)
	m.SessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "legisview_sessions_active",
		Help: "Browsing sessions currently held in memory",
	})
	m.SessionsEvicted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "legisview_sessions_evicted_total",
		Help: "Sessions dropped to stay within capacity",
	})

	m.registry.MustRegister(
		m.UpstreamRequestsTotal,
		m.UpstreamRequestDuration,
		m.UpstreamCacheHitsTotal,
		m.PageRendersTotal,
		m.SupersededLoadsTotal,
		m.DisplayTogglesTotal,
		m.QuerySubmissionsTotal,
		m.SessionsActive,
		m.SessionsEvicted,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveUpstream records one archive API request.
func (m *Metrics) ObserveUpstream(endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.UpstreamRequestsTotal.WithLabelValues(endpoint, label).Inc()
	m.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// CacheHit records a payload served from the document cache.
func (m *Metrics) CacheHit(endpoint string) {
	if m == nil {
		return
	}
	m.UpstreamCacheHitsTotal.WithLabelValues(endpoint).Inc()
}

// PageRendered records a rendered page and its outcome.
func (m *Metrics) PageRendered(page, state string) {
	if m == nil {
		return
	}
	m.PageRendersTotal.WithLabelValues(page, state).Inc()
}

// QuerySubmitted records a search query submission by producer.
func (m *Metrics) QuerySubmitted(producer string) {
	if m == nil {
		return
	}
	m.QuerySubmissionsTotal.WithLabelValues(producer).Inc()
}

// DisplayToggled records a text/image toggle.
func (m *Metrics) DisplayToggled() {
	if m == nil {
		return
	}
	m.DisplayTogglesTotal.Inc()
}

// LoadSuperseded records a discarded search load.
func (m *Metrics) LoadSuperseded() {
	if m == nil {
		return
	}
	m.SupersededLoadsTotal.Inc()
}
