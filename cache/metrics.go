package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/ptalign/internal/metrics"
)

// Metrics groups the Prometheus collectors updated by a Cache.
type Metrics struct {
	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Evictions prometheus.Counter
	Entries   prometheus.Gauge
}

// NewMetrics creates the cache collectors and registers them with reg.
// A nil reg yields nil metrics, which disables instrumentation.
// Caches sharing one registry share the collectors and add to the same series.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}

	var (
		m   Metrics
		err error
	)
	if m.Hits, err = metrics.Register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ptalign_cache_hits_total",
		Help: "Alignment cost lookups answered from the cache.",
	})); err != nil {
		return nil, err
	}
	if m.Misses, err = metrics.Register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ptalign_cache_misses_total",
		Help: "Alignment cost lookups that required a computation.",
	})); err != nil {
		return nil, err
	}
	if m.Evictions, err = metrics.Register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ptalign_cache_evictions_total",
		Help: "Entries dropped from bounded per-node tables.",
	})); err != nil {
		return nil, err
	}
	if m.Entries, err = metrics.Register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ptalign_cache_entries",
		Help: "Alignment costs currently cached.",
	})); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *Metrics) hit() {
	if m != nil {
		m.Hits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.Misses.Inc()
	}
}

func (m *Metrics) stored(evicted bool) {
	if m == nil {
		return
	}
	if evicted {
		m.Evictions.Inc()

		return
	}
	m.Entries.Inc()
}

func (m *Metrics) purged(n int) {
	if m != nil && n > 0 {
		m.Entries.Sub(float64(n))
	}
}
