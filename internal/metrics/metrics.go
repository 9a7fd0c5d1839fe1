// Package metrics implements sat.Observer on top of Prometheus client
// metrics so a long-running batch or service can expose solver progress
// alongside its other instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver registers a fixed set of counters and histograms against a
// caller-supplied registry and updates them as the solver calls its
// sat.Observer methods.
type PrometheusObserver struct {
	decisions     prometheus.Counter
	conflicts     prometheus.Counter
	restarts      prometheus.Counter
	propagations  prometheus.Counter
	learnts       prometheus.Counter
	learntSize    prometheus.Histogram
	learntLBD     prometheus.Histogram
}

// NewPrometheusObserver creates and registers the collectors against reg.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	o := &PrometheusObserver{
		decisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sat_decisions_total",
			Help: "Number of branching decisions made by the solver.",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sat_conflicts_total",
			Help: "Number of conflicts encountered by the solver.",
		}),
		restarts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sat_restarts_total",
			Help: "Number of restarts performed by the solver.",
		}),
		propagations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sat_propagations_total",
			Help: "Number of literals propagated by the solver.",
		}),
		learnts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sat_learnts_total",
			Help: "Number of clauses added to the learnt database.",
		}),
		learntSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sat_learnt_clause_size",
			Help:    "Literal count of learnt clauses.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		learntLBD: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sat_learnt_clause_lbd",
			Help:    "Literal block distance of learnt clauses.",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
	}
	reg.MustRegister(
		o.decisions,
		o.conflicts,
		o.restarts,
		o.propagations,
		o.learnts,
		o.learntSize,
		o.learntLBD,
	)
	return o
}

func (o *PrometheusObserver) OnDecision()    { o.decisions.Inc() }
func (o *PrometheusObserver) OnConflict()    { o.conflicts.Inc() }
func (o *PrometheusObserver) OnRestart()     { o.restarts.Inc() }
func (o *PrometheusObserver) OnPropagation() { o.propagations.Inc() }

func (o *PrometheusObserver) OnLearn(size, lbd int) {
	o.learnts.Inc()
	o.learntSize.Observe(float64(size))
	o.learntLBD.Observe(float64(lbd))
}
