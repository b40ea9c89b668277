// Package telemetry provides Prometheus metrics for the admission cache.
package telemetry

import (
	"time"

	"github.com/goliatone/go-weather-cache/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for one admission cache.
// It implements cache.Observer.
type Metrics struct {
	// Resolve metrics
	ResolvesTotal    *prometheus.CounterVec
	AdmissionBypass  prometheus.Counter
	FetchFailures    prometheus.Counter
	FetchDuration    prometheus.Histogram
	RecentKeysActive prometheus.Gauge
}

var _ cache.Observer = (*Metrics)(nil)

// NewMetrics creates and registers metrics on reg under the given namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ResolvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "resolves_total",
			Help:      "Total number of successful resolves by provenance",
		}, []string{"provenance"}),
		AdmissionBypass: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "admission_bypass_total",
			Help:      "Total number of resolves that skipped the cache lookup",
		}),
		FetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "fetch_failures_total",
			Help:      "Total number of failed fetches",
		}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "fetch_duration_seconds",
			Help:      "Fetch latency in seconds",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		RecentKeysActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "recent_keys",
			Help:      "Current size of the recent-keys tracker",
		}),
	}
}

// ObserveResolve implements cache.Observer.
func (m *Metrics) ObserveResolve(_ string, p cache.Provenance, _ bool) {
	m.ResolvesTotal.WithLabelValues(provenanceLabel(p)).Inc()
}

// ObserveBypass implements cache.Observer. Bypasses are counted whether or
// not the following fetch succeeds.
func (m *Metrics) ObserveBypass(string) {
	m.AdmissionBypass.Inc()
}

// ObserveFetch implements cache.Observer.
func (m *Metrics) ObserveFetch(_ string, d time.Duration, err error) {
	m.FetchDuration.Observe(d.Seconds())
	if err != nil {
		m.FetchFailures.Inc()
	}
}

// ObserveRecent implements cache.Observer.
func (m *Metrics) ObserveRecent(size int) {
	m.RecentKeysActive.Set(float64(size))
}

func provenanceLabel(p cache.Provenance) string {
	switch p {
	case cache.FromCache:
		return "cache"
	case cache.Fetched:
		return "fetched"
	default:
		return "unknown"
	}
}
