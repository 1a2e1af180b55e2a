package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

func runFlow(g *storage.Graph, starts ...string) FlowResult {
	return Propagate(g, GetChain(g, starts, DirectionInput), starts)
}

func TestEvaluateGate(t *testing.T) {
	tests := []struct {
		name string
		typ  storage.NodeType
		in   GateInputs
		want bool
	}{
		{"any with active input", storage.NodeTypeAny, GateInputs{ChainStandard: 1, AllStandard: 3, AllInbound: 3}, true},
		{"any without active input", storage.NodeTypeAny, GateInputs{ChainSuppress: 1, AllSuppress: 1, AllInbound: 1}, false},
		{"all fully active", storage.NodeTypeAll, GateInputs{ChainStandard: 2, AllStandard: 2, AllInbound: 2}, true},
		{"all partially active", storage.NodeTypeAll, GateInputs{ChainStandard: 1, AllStandard: 2, AllInbound: 2}, false},
		{"all counts suppress edges as required", storage.NodeTypeAll, GateInputs{ChainStandard: 1, AllStandard: 1, AllSuppress: 1, AllInbound: 2}, false},
		{"suppression with idle suppressor", storage.NodeTypeSuppression, GateInputs{ChainStandard: 1, AllStandard: 1, AllSuppress: 1, AllInbound: 2}, true},
		{"suppression with active suppressor", storage.NodeTypeSuppression, GateInputs{ChainStandard: 1, ChainSuppress: 1, AllStandard: 1, AllSuppress: 1, AllInbound: 2}, false},
		{"suppression missing standard input", storage.NodeTypeSuppression, GateInputs{ChainStandard: 1, AllStandard: 2, AllSuppress: 1, AllInbound: 3}, false},
		{"suppression with no suppress edges", storage.NodeTypeSuppression, GateInputs{ChainStandard: 1, AllStandard: 1, AllInbound: 1}, false},
		{"comp always passes", storage.NodeTypeComp, GateInputs{AllInbound: 4}, true},
		{"unknown type passes", storage.NodeType("xor"), GateInputs{AllInbound: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateGate(tt.typ, tt.in))
		})
	}
}

func TestPropagate_AllGateFailsOnPartialInput(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "S1", "S2", "O").
		node("G", storage.NodeTypeAll).
		link("S1", "G").link("S2", "G").link("G", "O").
		build()

	result := runFlow(g, "S1")

	assert.Equal(t, []string{"S1", "G"}, nodeIDs(result.Nodes))
	assert.True(t, result.IsFailed("G"))
	assert.Equal(t, []string{"G"}, result.Failed())
	assert.Equal(t, []string{"O"}, result.Excluded)
	assert.Equal(t, [][2]string{{"S1", "G"}}, linkPairs(result.Links))
}

func TestPropagate_AllGatePassesWhenEveryInputActive(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "S1", "S2", "O").
		node("G", storage.NodeTypeAll).
		link("S1", "G").link("S2", "G").link("G", "O").
		build()

	result := runFlow(g, "S1", "S2")

	assert.True(t, result.Passed("G"))
	assert.True(t, result.Passed("O"))
	assert.Empty(t, result.Failed())
}

func TestPropagate_AnyGatePasses(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "S", "O").
		node("G", storage.NodeTypeAny).
		nodes(storage.NodeTypeComp, "Other").
		link("S", "G").link("Other", "G").link("G", "O").
		build()

	result := runFlow(g, "S")

	assert.Equal(t, []string{"S", "G", "O"}, nodeIDs(result.Nodes))
	assert.True(t, result.Passed("G"))
	assert.True(t, result.Passed("O"))
	assert.Equal(t, [][2]string{{"S", "G"}, {"G", "O"}}, linkPairs(result.Links))
}

func TestPropagate_SuppressionBlockedByActiveSuppressor(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "S", "X", "O").
		node("G", storage.NodeTypeSuppression).
		link("S", "G").suppress("X", "G").link("G", "O").
		build()

	result := runFlow(g, "S", "X")

	assert.True(t, result.IsFailed("G"))
	assert.False(t, result.Passed("O"))
	assert.Equal(t, []string{"S", "X", "G"}, nodeIDs(result.Nodes))
}

func TestPropagate_SuppressionPassesWithIdleSuppressor(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "S", "X", "O").
		node("G", storage.NodeTypeSuppression).
		link("S", "G").suppress("X", "G").link("G", "O").
		build()

	result := runFlow(g, "S")

	assert.True(t, result.Passed("G"))
	assert.True(t, result.Passed("O"))
}

func TestPropagate_StartNodesAreNotEvaluated(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "U", "O").
		node("S", storage.NodeTypeAll).
		link("U", "S").link("S", "O").
		build()

	result := runFlow(g, "S")

	assert.True(t, result.Passed("S"))
	assert.True(t, result.Passed("O"))
}

func TestPropagate_FailureExcludesDownstreamReachedOtherwise(t *testing.T) {
	// D is reachable straight from S but sits downstream of the failing F
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "S", "Z", "D").
		node("F", storage.NodeTypeAll).
		link("S", "F").link("Z", "F").link("S", "D").link("F", "D").
		build()

	result := runFlow(g, "S")

	assert.Equal(t, []string{"S", "F"}, nodeIDs(result.Nodes))
	assert.Equal(t, []string{"D"}, result.Excluded)
	assert.False(t, result.Passed("D"))
}

func TestPropagate_CycleTerminatesAndNodesAreUnique(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "A", "B", "C").
		link("A", "B").link("B", "C").link("C", "A").
		build()

	result := runFlow(g, "A")

	assert.ElementsMatch(t, []string{"A", "B", "C"}, nodeIDs(result.Nodes))
	assert.Len(t, result.Links, 3)
}

func TestPropagate_SortedByDepth(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "A", "B", "C", "D").
		link("A", "B").link("B", "C").link("C", "D").
		build()

	result := runFlow(g, "A")

	require.Len(t, result.Nodes, 4)
	for i := 1; i < len(result.Nodes); i++ {
		assert.LessOrEqual(t, result.Nodes[i-1].Depth, result.Nodes[i].Depth)
	}
	// B activates C before itself; sorting restores depth order
	assert.Equal(t, []string{"A", "B", "C", "D"}, nodeIDs(result.Nodes))
}

func TestPropagate_DoesNotMutateChain(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "S1", "S2").
		node("G", storage.NodeTypeAll).
		link("S1", "G").link("S2", "G").
		build()
	chain := GetChain(g, []string{"S1"}, DirectionInput)

	first := Propagate(g, chain, []string{"S1"})
	second := Propagate(g, chain, []string{"S1"})

	assert.Equal(t, first, second)
	for _, n := range chain.Nodes {
		assert.False(t, n.Fail)
	}
}

func TestPropagate_Empty(t *testing.T) {
	g := linear(t)

	result := Propagate(g, Chain{}, []string{"A"})
	assert.Empty(t, result.Nodes)
	assert.NotNil(t, result.Links)
	assert.NotNil(t, result.Excluded)

	result = Propagate(nil, GetChain(g, []string{"A"}, DirectionInput), []string{"A"})
	assert.Empty(t, result.Nodes)
}
