package align

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/ptalign/cache"
	"github.com/katalvlaran/ptalign/internal/metrics"
)

// Values of the "result" label of ptalign_alignments_total.
const (
	resultOK       = "ok"
	resultCanceled = "canceled"
	resultError    = "error"
)

type engineMetrics struct {
	alignments *prometheus.CounterVec
	duration   prometheus.Histogram
}

// newMetrics registers the engine and cache collectors on reg.
// A nil reg disables both.
func newMetrics(reg prometheus.Registerer) (*engineMetrics, *cache.Metrics, error) {
	if reg == nil {
		return nil, nil, nil
	}

	alignments, err := metrics.Register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ptalign_alignments_total",
		Help: "Trace alignments by outcome.",
	}, []string{"result"}))
	if err != nil {
		return nil, nil, err
	}
	duration, err := metrics.Register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ptalign_alignment_duration_seconds",
		Help:    "Wall time of single trace alignments.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
	}))
	if err != nil {
		return nil, nil, err
	}
	cm, err := cache.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}

	return &engineMetrics{alignments: alignments, duration: duration}, cm, nil
}

func (m *engineMetrics) observe(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := resultOK
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		result = resultCanceled
	default:
		result = resultError
	}
	m.alignments.WithLabelValues(result).Inc()
	m.duration.Observe(d.Seconds())
}
