// Package metrics exposes simulation counters in Prometheus format.
//
// Metrics live on a private registry so tests and repeated CLI runs never
// collide with the global default registry. The CLI has no server to scrape,
// so the registry is written to a node_exporter textfile-collector file on
// demand.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/ntm/internal/engine"
)

const namespace = "ntm"

// Metrics holds the collectors for one process.
// Safe for concurrent use; every collector is.
type Metrics struct {
	registry *prometheus.Registry

	runs         *prometheus.CounterVec
	rounds       prometheus.Counter
	explored     prometheus.Counter
	pruned       prometheus.Counter
	dead         prometheus.Counter
	frontier     prometheus.Gauge
	runSteps     prometheus.Histogram
	peakFrontier prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Finished runs by verdict and terminal cause.",
			},
			[]string{"verdict", "cause"},
		),
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_total",
			Help:      "Expansion rounds performed.",
		}),
		explored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "successors_total",
			Help:      "Successor configurations produced, including pruned ones.",
		}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pruned_total",
			Help:      "Successor configurations dropped by the visited set.",
		}),
		dead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dead_branches_total",
			Help:      "Frontier configurations with no applicable move.",
		}),
		frontier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frontier_size",
			Help:      "Size of the most recently expanded frontier.",
		}),
		runSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_steps",
			Help:      "Rounds taken per finished run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		peakFrontier: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_peak_frontier",
			Help:      "Largest frontier per finished run.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}

	m.registry.MustRegister(
		m.runs,
		m.rounds,
		m.explored,
		m.pruned,
		m.dead,
		m.frontier,
		m.runSteps,
		m.peakFrontier,
	)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// OnStep implements engine.Observer.
func (m *Metrics) OnStep(r engine.StepReport) {
	m.rounds.Inc()
	m.explored.Add(float64(r.Kept + r.Pruned))
	m.pruned.Add(float64(r.Pruned))
	m.dead.Add(float64(r.Dead))
	m.frontier.Set(float64(r.Frontier))
}

// Record counts a finished run.
func (m *Metrics) Record(result engine.Result) {
	m.runs.WithLabelValues(string(result.Verdict), string(result.Cause)).Inc()
	m.runSteps.Observe(float64(result.Steps))
	m.peakFrontier.Observe(float64(result.PeakFrontier))
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

var _ engine.Observer = (*Metrics)(nil)
