package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

func TestParseDirection(t *testing.T) {
	assert.Equal(t, DirectionInput, ParseDirection("input"))
	assert.Equal(t, DirectionOutput, ParseDirection("output"))
	assert.Equal(t, DirectionOutput, ParseDirection("sideways"))
	assert.True(t, DirectionInput.Forward())
	assert.False(t, DirectionOutput.Forward())
}

func TestGetChain_LinearInput(t *testing.T) {
	g := linear(t)

	chain := GetChain(g, []string{"A"}, DirectionInput)

	assert.Equal(t, []string{"A", "B", "C", "D"}, chain.NodeIDs())
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2, "D": 3}, chain.Depths())
	assert.Equal(t, [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}}, linkPairs(chain.Links))

	b, ok := chain.Node("B")
	require.True(t, ok)
	assert.Equal(t, storage.NodeTypeComp, b.Type)
	assert.Equal(t, "T", b.Network)
	assert.False(t, b.Fail)
}

func TestGetChain_OutputReversesLinks(t *testing.T) {
	g := linear(t)

	chain := GetChain(g, []string{"D"}, DirectionOutput)

	assert.Equal(t, []string{"D", "C", "B", "A"}, chain.NodeIDs())
	assert.Equal(t, map[string]int{"D": 0, "C": 1, "B": 2, "A": 3}, chain.Depths())
	// Base graph order, each link pointing away from the start node
	assert.Equal(t, [][2]string{{"B", "A"}, {"C", "B"}, {"D", "C"}}, linkPairs(chain.Links))
}

func TestGetChain_ShortestHopPerStart(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "A", "B", "C").
		link("A", "B").link("B", "C").link("A", "C").
		build()

	chain := GetChain(g, []string{"A"}, DirectionInput)
	assert.Equal(t, 1, chain.Depths()["C"])
}

// Depth is the shortest hop count, so a cross link from a deeper node to a
// shallower one is kept in the chain with a decreasing depth. Depth is only
// monotonic along the links of the breadth-first tree.
func TestGetChain_CrossLinkDepthDecreases(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "S", "X", "Y", "Z").
		link("S", "X").link("S", "Y").link("Y", "Z").link("Z", "X").
		build()

	chain := GetChain(g, []string{"S"}, DirectionInput)
	depths := chain.Depths()

	assert.Equal(t, map[string]int{"S": 0, "X": 1, "Y": 1, "Z": 2}, depths)
	assert.Contains(t, linkPairs(chain.Links), [2]string{"Z", "X"})
	assert.Less(t, depths["X"], depths["Z"], "cross link Z->X points to a shallower node")

	// Every node still has a tree link from the previous depth
	for _, l := range [][2]string{{"S", "X"}, {"S", "Y"}, {"Y", "Z"}} {
		assert.Equal(t, depths[l[0]]+1, depths[l[1]], "tree link %s->%s", l[0], l[1])
	}
}

// A node reached from several start nodes keeps the depth from the first
// start node that reached it, not the smallest depth.
func TestGetChain_MultiStartFirstWriteWins(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "S1", "X", "Y", "T", "S2").
		link("S1", "X").link("X", "Y").link("Y", "T").
		link("S2", "T").
		build()

	chain := GetChain(g, []string{"S1", "S2"}, DirectionInput)
	depths := chain.Depths()
	assert.Equal(t, 3, depths["T"])
	assert.Equal(t, 0, depths["S2"])
	assert.Equal(t, []string{"S1", "X", "Y", "T", "S2"}, chain.NodeIDs())

	reversed := GetChain(g, []string{"S2", "S1"}, DirectionInput)
	assert.Equal(t, 1, reversed.Depths()["T"])
}

func TestGetChain_LinksDedupedAcrossStarts(t *testing.T) {
	g := linear(t)

	chain := GetChain(g, []string{"A", "B"}, DirectionInput)

	assert.Len(t, chain.Nodes, 4)
	ids := make(map[string]int)
	for _, l := range chain.Links {
		ids[l.ID]++
	}
	for id, n := range ids {
		assert.Equal(t, 1, n, "link %s repeated", id)
	}
	assert.Len(t, chain.Links, 3)
}

func TestGetChain_Cycle(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "A", "B", "C").
		link("A", "B").link("B", "C").link("C", "A").
		build()

	chain := GetChain(g, []string{"A"}, DirectionInput)

	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2}, chain.Depths())
	assert.Len(t, chain.Links, 3)
}

func TestGetChain_ParallelEdgesAndSuppress(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "A", "B").
		link("A", "B").suppress("A", "B").
		build()

	chain := GetChain(g, []string{"A"}, DirectionInput)

	require.Len(t, chain.Links, 2)
	assert.Equal(t, storage.EdgeStandard, chain.Links[0].Type)
	assert.Equal(t, storage.EdgeSuppress, chain.Links[1].Type)
}

func TestGetChain_ExcludesUnreachable(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "A", "B", "Z").
		link("A", "B").link("Z", "B").
		build()

	chain := GetChain(g, []string{"A"}, DirectionInput)

	assert.Equal(t, []string{"A", "B"}, chain.NodeIDs())
	assert.Equal(t, [][2]string{{"A", "B"}}, linkPairs(chain.Links))
	assert.False(t, chain.Contains("Z"))
}

func TestGetChain_EmptyInputs(t *testing.T) {
	g := linear(t)

	tests := []struct {
		name   string
		graph  *storage.Graph
		starts []string
	}{
		{"no start nodes", g, nil},
		{"unknown start nodes", g, []string{"nope"}},
		{"nil graph", nil, []string{"A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := GetChain(tt.graph, tt.starts, DirectionInput)
			assert.True(t, chain.Empty())
			assert.NotNil(t, chain.Nodes)
			assert.NotNil(t, chain.Links)
		})
	}
}

func TestGetChain_UnknownStartSkipped(t *testing.T) {
	g := linear(t)

	chain := GetChain(g, []string{"nope", "C"}, DirectionInput)
	assert.Equal(t, []string{"C", "D"}, chain.NodeIDs())
}
