package sequencer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

// Metrics are the sequencer's prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	stageDuration *prometheus.HistogramVec
	runs          *prometheus.CounterVec
	failures      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg (if non-nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: "sequencer",
			Name:      "stage_duration_seconds",
			Help:      "Duration of sequence stages, including the remote call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"sequence", "stage_kind"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "sequencer",
			Name:      "runs_total",
			Help:      "Finished sequence runs by outcome.",
		}, []string{"sequence", "outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "sequencer",
			Name:      "stage_failures_total",
			Help:      "Failed stages by stage name and error kind.",
		}, []string{"sequence", "stage", "kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.stageDuration, m.runs, m.failures)
	}
	return m
}

func (m *Metrics) observeStage(sequence string, kind StageKind, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(sequence, string(kind)).Observe(d.Seconds())
}

func (m *Metrics) succeeded(sequence string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(sequence, "succeeded").Inc()
}

func (m *Metrics) failed(sequence, stage string, kind domain.ErrorKind) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(sequence, "failed").Inc()
	m.failures.WithLabelValues(sequence, stage, string(kind)).Inc()
}
