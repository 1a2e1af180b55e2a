package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/common/expfmt"
)

// Cache lookup results
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Flow run outcomes
const (
	OutcomePassed = "passed"
	OutcomeFailed = "failed"
	OutcomeEmpty  = "empty"
)

// RecordGraphBuild records a graph build with its size and skipped routes
func (r *Registry) RecordGraphBuild(duration time.Duration, nodes, edges, skippedRoutes int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.GraphBuildsTotal.Inc()
	r.GraphBuildDuration.Observe(duration.Seconds())
	r.RoutesSkippedTotal.Add(float64(skippedRoutes))
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// RecordCacheLookup records a graph cache hit or miss
func (r *Registry) RecordCacheLookup(hit bool) {
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	r.GraphCacheTotal.WithLabelValues(result).Inc()
}

// RecordChainQuery records a chain computation
func (r *Registry) RecordChainQuery(nodes int) {
	r.ChainQueriesTotal.Inc()
	r.ChainNodes.Observe(float64(nodes))
}

// RecordFlowRun records a propagation run
func (r *Registry) RecordFlowRun(activated, failed int) {
	outcome := OutcomePassed
	switch {
	case activated == 0:
		outcome = OutcomeEmpty
	case failed > 0:
		outcome = OutcomeFailed
	}
	r.FlowRunsTotal.WithLabelValues(outcome).Inc()
	r.FlowFailedNodes.Observe(float64(failed))
}

// WriteText writes every metric in the Prometheus text exposition format
func (r *Registry) WriteText(w io.Writer) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
