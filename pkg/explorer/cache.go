package explorer

import (
	"fmt"
	"time"

	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
	"github.com/dd0wney/cluso-archflow/pkg/architecture"
	"github.com/dd0wney/cluso-archflow/pkg/logging"
	"github.com/dd0wney/cluso-archflow/pkg/metrics"
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// CacheKey identifies a cached graph.
type CacheKey struct {
	ArchitectureID int
	Direction      algorithms.Direction
}

func (k CacheKey) String() string {
	return fmt.Sprintf("arch%d/%s", k.ArchitectureID, k.Direction)
}

type cacheEntry struct {
	graph  *storage.Graph
	report architecture.BuildReport
}

// GraphCache holds the graph of the active (architecture, direction) pair.
// Asking for a different pair drops every other entry, so at most one
// graph is resident. A rebuilt graph replaces the old one wholesale.
type GraphCache struct {
	dataset *architecture.Dataset
	entries map[CacheKey]cacheEntry
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewGraphCache creates an empty cache over dataset.
func NewGraphCache(dataset *architecture.Dataset, logger logging.Logger, reg *metrics.Registry) *GraphCache {
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	return &GraphCache{
		dataset: dataset,
		entries: make(map[CacheKey]cacheEntry),
		logger:  logging.OrDefault(logger).With(logging.Component("graph_cache")),
		metrics: reg,
	}
}

// Get returns the cached graph for key, building it on a miss.
func (c *GraphCache) Get(key CacheKey) (*storage.Graph, architecture.BuildReport, error) {
	if e, ok := c.entries[key]; ok {
		c.metrics.RecordCacheLookup(true)
		c.logger.Debug("graph cache hit", logging.String("key", key.String()))
		return e.graph, e.report, nil
	}
	c.metrics.RecordCacheLookup(false)

	start := time.Now()
	g, report, err := c.dataset.BuildArchitectureGraph(key.ArchitectureID, c.logger)
	if err != nil {
		return nil, architecture.BuildReport{}, fmt.Errorf("failed to build graph %s: %w", key, err)
	}
	stats := g.GetStatistics()
	c.metrics.RecordGraphBuild(time.Since(start), stats.NodeCount, stats.EdgeCount, len(report.SkippedRoutes))

	c.Invalidate()
	c.entries[key] = cacheEntry{graph: g, report: report}

	c.logger.Info("graph built",
		logging.String("key", key.String()),
		logging.Int("nodes", stats.NodeCount),
		logging.Int("edges", stats.EdgeCount),
		logging.Latency(time.Since(start)),
	)
	return g, report, nil
}

// Contains reports whether key is cached.
func (c *GraphCache) Contains(key CacheKey) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of cached graphs.
func (c *GraphCache) Len() int {
	return len(c.entries)
}

// Invalidate drops every cached graph.
func (c *GraphCache) Invalidate() {
	clear(c.entries)
}
