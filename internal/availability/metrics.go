// internal/availability/metrics.go
package availability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts lookups and what weeding removed.
type Metrics struct {
	lookups   *prometheus.CounterVec
	removed   *prometheus.CounterVec
	holdings  prometheus.Histogram
	lostNotes prometheus.Counter
}

// NewMetrics registers the availability collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "libranexus",
			Subsystem: "availability",
			Name:      "lookups_total",
			Help:      "Availability lookups by outcome.",
		}, []string{"outcome"}),
		removed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "libranexus",
			Subsystem: "availability",
			Name:      "weeded_total",
			Help:      "Holdings and copies removed before display, by reason.",
		}, []string{"reason"}),
		holdings: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "libranexus",
			Subsystem: "availability",
			Name:      "holdings_displayed",
			Help:      "Holdings left after weeding.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}),
		lostNotes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "libranexus",
			Subsystem: "availability",
			Name:      "lost_notes_total",
			Help:      "Library lost/missing notes generated.",
		}),
	}
	reg.MustRegister(m.lookups, m.removed, m.holdings, m.lostNotes)
	return m
}

// Outcomes recorded by Observe.
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
	OutcomeCanceled = "canceled"
)

// Observe records a finished lookup. A nil Metrics is a no-op.
func (m *Metrics) Observe(a *Availability) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if a.Err() != nil {
		outcome = OutcomeDegraded
	}
	m.lookups.WithLabelValues(outcome).Inc()
	for reason, n := range a.Weeding().Removed {
		m.removed.WithLabelValues(reason).Add(float64(n))
	}
	m.holdings.Observe(float64(len(a.Holdings())))
	m.lostNotes.Add(float64(len(a.Lost())))
}

func (m *Metrics) Canceled() {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(OutcomeCanceled).Inc()
}
