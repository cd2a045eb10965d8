package observability

import (
	"context"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors exported by tmsim.
type Metrics struct {
	Simulations  *prometheus.CounterVec
	Steps        prometheus.Histogram
	LoadFailures *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Simulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmsim_simulations_total",
				Help: "Total number of simulated input strings",
			},
			[]string{"verdict", "reason"},
		),
		Steps: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tmsim_simulation_steps",
				Help:    "Transitions applied per simulated input string",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		LoadFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmsim_load_failures_total",
				Help: "Machine descriptions rejected by the loader",
			},
			[]string{"kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Simulations, m.Steps, m.LoadFailures)
	}
	return m
}

// Hooks returns lifecycle hooks that record every halted simulation.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnHalt: func(_ context.Context, e *domain.HaltEvent) {
			m.Simulations.WithLabelValues(e.Result.Verdict.String(), string(e.Result.Reason)).Inc()
			m.Steps.Observe(float64(e.Result.Steps))
		},
	}
}

// ObserveLoadError counts a failed load by error kind.
func (m *Metrics) ObserveLoadError(err error) {
	if err == nil {
		return
	}
	m.LoadFailures.WithLabelValues(domain.ErrorKind(err)).Inc()
}
