package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphBuildsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "archflow_graph_builds_total",
			Help: "Total number of architecture graphs built",
		},
	)

	r.GraphBuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "archflow_graph_build_duration_seconds",
			Help:    "Architecture graph build duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	r.GraphCacheTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "archflow_graph_cache_total",
			Help: "Graph cache lookups by result",
		},
		[]string{"result"},
	)

	r.RoutesSkippedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "archflow_routes_skipped_total",
			Help: "Routes skipped because an endpoint node is missing",
		},
	)

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "archflow_graph_nodes",
			Help: "Number of nodes in the active architecture graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "archflow_graph_edges",
			Help: "Number of edges in the active architecture graph",
		},
	)
}
