package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the explorer
type Registry struct {
	// Graph build metrics
	GraphBuildsTotal   prometheus.Counter
	GraphBuildDuration prometheus.Histogram
	GraphCacheTotal    *prometheus.CounterVec
	RoutesSkippedTotal prometheus.Counter
	GraphNodes         prometheus.Gauge
	GraphEdges         prometheus.Gauge

	// Query metrics
	ChainQueriesTotal prometheus.Counter
	ChainNodes        prometheus.Histogram
	FlowRunsTotal     *prometheus.CounterVec
	FlowFailedNodes   prometheus.Histogram

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initGraphMetrics()
	r.initQueryMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
