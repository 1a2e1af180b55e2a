package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initQueryMetrics() {
	r.ChainQueriesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "archflow_chain_queries_total",
			Help: "Total number of chain computations",
		},
	)

	r.ChainNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "archflow_chain_nodes",
			Help:    "Number of nodes in computed chains",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	r.FlowRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "archflow_flow_runs_total",
			Help: "Total number of propagation runs by outcome",
		},
		[]string{"outcome"},
	)

	r.FlowFailedNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "archflow_flow_failed_nodes",
			Help:    "Number of failed nodes per propagation run",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
		},
	)
}
