package payroll

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer.
type Metrics struct {
	runs          *prometheus.CounterVec
	transfers     *prometheus.CounterVec
	paid          prometheus.Counter
	sweepDuration prometheus.Histogram
	sweepFailures prometheus.Counter
	lastSweep     prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bossboard",
			Subsystem: "payroll",
			Name:      "runs_total",
			Help:      "Payroll executions by trigger and outcome (completed, error or the skip reason).",
		}, []string{"trigger", "outcome"}),
		transfers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bossboard",
			Subsystem: "payroll",
			Name:      "transfers_total",
			Help:      "Worker transfers attempted, by result.",
		}, []string{"result"}),
		paid: f.NewCounter(prometheus.CounterOpts{
			Namespace: "bossboard",
			Subsystem: "payroll",
			Name:      "paid_amount_total",
			Help:      "Sum of transfer amounts accepted by the wallet provider.",
		}),
		sweepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bossboard",
			Subsystem: "payroll",
			Name:      "sweep_duration_seconds",
			Help:      "Wall time of one scheduler sweep over all schedulable companies.",
			Buckets:   prometheus.DefBuckets,
		}),
		sweepFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "bossboard",
			Subsystem: "payroll",
			Name:      "sweep_company_failures_total",
			Help:      "Companies whose execution returned an error or panicked during a sweep.",
		}),
		lastSweep: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "bossboard",
			Subsystem: "payroll",
			Name:      "last_sweep_timestamp_seconds",
			Help:      "Unix time the last sweep finished.",
		}),
	}
}

func (m *Metrics) observeRun(trigger, outcome string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(trigger, outcome).Inc()
}

func (m *Metrics) observeTransfers(r ExecutionResult) {
	if m == nil {
		return
	}
	for _, t := range r.Transfers {
		if t.Failed() {
			m.transfers.WithLabelValues("failed").Inc()
			continue
		}
		m.transfers.WithLabelValues("accepted").Inc()
		m.paid.Add(t.Amount.InexactFloat64())
	}
}

func (m *Metrics) observeSweep(started time.Time, failures int) {
	if m == nil {
		return
	}
	m.sweepDuration.Observe(time.Since(started).Seconds())
	m.sweepFailures.Add(float64(failures))
	m.lastSweep.SetToCurrentTime()
}
