// Package metrics exposes Prometheus collectors for plan computations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/debtplanner/internal/calculator"
)

// Recorder observes simulation runs.
type Recorder struct {
	runs      *prometheus.CounterVec
	stale     prometheus.Counter
	duration  *prometheus.HistogramVec
	months    *prometheus.HistogramVec
	unreached *prometheus.CounterVec
	debts     prometheus.Gauge
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "debtplanner",
			Name:      "simulations_total",
			Help:      "Payoff simulations run, by strategy.",
		}, []string{"strategy"}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "debtplanner",
			Name:      "simulations_discarded_total",
			Help:      "Simulation results dropped because a newer run had already been published.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "debtplanner",
			Name:      "simulation_duration_seconds",
			Help:      "Wall time of one simulation run.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"strategy"}),
		months: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "debtplanner",
			Name:      "payoff_months",
			Help:      "Length of the computed schedule in months.",
			Buckets:   []float64{12, 24, 36, 60, 120, 240, 360, 480, calculator.MaxMonths},
		}, []string{"strategy"}),
		unreached: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "debtplanner",
			Name:      "horizon_reached_total",
			Help:      "Runs that stopped at the month ceiling with debt outstanding.",
		}, []string{"strategy"}),
		debts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "debtplanner",
			Name:      "debts",
			Help:      "Debts in the current list.",
		}),
	}
	reg.MustRegister(r.runs, r.stale, r.duration, r.months, r.unreached, r.debts)
	return r
}

// ObserveRun records one finished simulation.
func (r *Recorder) ObserveRun(strategy calculator.Strategy, took time.Duration, summary calculator.Summary) {
	s := string(strategy)
	r.runs.WithLabelValues(s).Inc()
	r.duration.WithLabelValues(s).Observe(took.Seconds())
	r.months.WithLabelValues(s).Observe(float64(summary.TotalMonths))
	if summary.HorizonReached {
		r.unreached.WithLabelValues(s).Inc()
	}
}

// ObserveDiscarded counts a result thrown away as stale.
func (r *Recorder) ObserveDiscarded() {
	r.stale.Inc()
}

// SetDebtCount updates the debt gauge.
func (r *Recorder) SetDebtCount(n int) {
	r.debts.Set(float64(n))
}
