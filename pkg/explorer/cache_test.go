package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
	"github.com/dd0wney/cluso-archflow/pkg/architecture"
	"github.com/dd0wney/cluso-archflow/pkg/logging"
	"github.com/dd0wney/cluso-archflow/pkg/metrics"
)

func TestGraphCache_HitAndMiss(t *testing.T) {
	reg := metrics.NewRegistry()
	c := NewGraphCache(plantDataset(), logging.NewNopLogger(), reg)
	key := CacheKey{ArchitectureID: 1, Direction: algorithms.DirectionInput}

	g1, report, err := c.Get(key)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, 7, g1.NodeCount())

	g2, _, err := c.Get(key)
	require.NoError(t, err)
	assert.Same(t, g1, g2)

	assert.Equal(t, float64(1), cacheCount(t, reg, metrics.CacheMiss))
	assert.Equal(t, float64(1), cacheCount(t, reg, metrics.CacheHit))
	assert.Equal(t, float64(1), counterValue(t, reg.GraphBuildsTotal))
}

func TestGraphCache_SingleResidentGraph(t *testing.T) {
	c := NewGraphCache(plantDataset(), logging.NewNopLogger(), metrics.NewRegistry())
	input := CacheKey{ArchitectureID: 1, Direction: algorithms.DirectionInput}
	output := CacheKey{ArchitectureID: 1, Direction: algorithms.DirectionOutput}
	other := CacheKey{ArchitectureID: 2, Direction: algorithms.DirectionOutput}

	g1, _, err := c.Get(input)
	require.NoError(t, err)

	_, _, err = c.Get(output)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Contains(output))
	assert.False(t, c.Contains(input))

	_, _, err = c.Get(other)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Contains(other))

	// Returning to a dropped key rebuilds a fresh graph
	g2, _, err := c.Get(input)
	require.NoError(t, err)
	assert.NotSame(t, g1, g2)
}

func TestGraphCache_Invalidate(t *testing.T) {
	c := NewGraphCache(plantDataset(), logging.NewNopLogger(), metrics.NewRegistry())
	key := CacheKey{ArchitectureID: 2, Direction: algorithms.DirectionInput}

	_, _, err := c.Get(key)
	require.NoError(t, err)
	c.Invalidate()

	assert.Zero(t, c.Len())
	assert.False(t, c.Contains(key))
}

func TestGraphCache_BuildErrorKeepsResidentGraph(t *testing.T) {
	c := NewGraphCache(plantDataset(), logging.NewNopLogger(), metrics.NewRegistry())
	key := CacheKey{ArchitectureID: 1, Direction: algorithms.DirectionInput}

	_, _, err := c.Get(key)
	require.NoError(t, err)

	_, _, err = c.Get(CacheKey{ArchitectureID: 9, Direction: algorithms.DirectionInput})
	assert.ErrorIs(t, err, architecture.ErrArchitectureNotFound)
	assert.True(t, c.Contains(key))
}

func TestSession_UsesCache(t *testing.T) {
	s, reg := newTestSession(t)

	require.NoError(t, s.SelectArchitecture(1))
	require.NoError(t, s.SelectArchitecture(1))
	require.NoError(t, s.SetDirection(algorithms.DirectionOutput))
	require.NoError(t, s.SetDirection(algorithms.DirectionOutput))

	assert.Equal(t, float64(2), cacheCount(t, reg, metrics.CacheMiss))
	assert.Equal(t, float64(2), cacheCount(t, reg, metrics.CacheHit))
	assert.Equal(t, 1, s.Cache().Len())
}

func TestCacheKey_String(t *testing.T) {
	k := CacheKey{ArchitectureID: 3, Direction: algorithms.DirectionOutput}
	assert.Equal(t, "arch3/output", k.String())
}
