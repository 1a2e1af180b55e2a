package algorithms

import (
	"fmt"
	"testing"

	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// testGraph builds small graphs with single-letter ids.
type testGraph struct {
	t     *testing.T
	g     *storage.Graph
	edges int
}

func newTestGraph(t *testing.T) *testGraph {
	t.Helper()
	return &testGraph{t: t, g: storage.NewGraph()}
}

func (tg *testGraph) node(id string, nodeType storage.NodeType) *testGraph {
	tg.t.Helper()
	if err := tg.g.AddNode(&storage.Node{ID: id, Type: nodeType, Class: storage.ClassIntermediate, Network: "T"}); err != nil {
		tg.t.Fatalf("AddNode(%s): %v", id, err)
	}
	return tg
}

func (tg *testGraph) nodes(nodeType storage.NodeType, ids ...string) *testGraph {
	tg.t.Helper()
	for _, id := range ids {
		tg.node(id, nodeType)
	}
	return tg
}

func (tg *testGraph) link(source, target string) *testGraph {
	tg.t.Helper()
	return tg.typedLink(source, target, storage.EdgeStandard)
}

func (tg *testGraph) suppress(source, target string) *testGraph {
	tg.t.Helper()
	return tg.typedLink(source, target, storage.EdgeSuppress)
}

func (tg *testGraph) typedLink(source, target string, edgeType storage.EdgeType) *testGraph {
	tg.t.Helper()
	id := fmt.Sprintf("e%d", tg.edges)
	tg.edges++
	if err := tg.g.AddEdge(&storage.Edge{ID: id, Source: source, Target: target, Type: edgeType}); err != nil {
		tg.t.Fatalf("AddEdge(%s->%s): %v", source, target, err)
	}
	return tg
}

func (tg *testGraph) build() *storage.Graph {
	tg.g.Seal()
	return tg.g
}

// linear builds A -> B -> C -> D of comp nodes.
func linear(t *testing.T) *storage.Graph {
	t.Helper()
	return newTestGraph(t).
		nodes(storage.NodeTypeComp, "A", "B", "C", "D").
		link("A", "B").link("B", "C").link("C", "D").
		build()
}

func linkPairs(links []ChainLink) [][2]string {
	pairs := make([][2]string, len(links))
	for i, l := range links {
		pairs[i] = [2]string{l.Source, l.Target}
	}
	return pairs
}

func nodeIDs(nodes []ChainNode) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
