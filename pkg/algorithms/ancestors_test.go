package algorithms

import (
	"reflect"
	"sort"
	"testing"

	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

func checkIDs(t *testing.T, what string, got, want []string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestChainAncestors_Linear(t *testing.T) {
	chain := GetChain(linear(t), []string{"A"}, DirectionInput)

	checkIDs(t, "ChainAncestors(D)", ChainAncestors("D", chain), []string{"D", "C", "B", "A"})
}

func TestChainAncestors_NoInbound(t *testing.T) {
	chain := GetChain(linear(t), []string{"A"}, DirectionInput)

	checkIDs(t, "ChainAncestors(A)", ChainAncestors("A", chain), []string{"A"})
	checkIDs(t, "ChainAncestors(Z)", ChainAncestors("Z", chain), []string{"Z"})
	checkIDs(t, "ChainAncestors on empty chain", ChainAncestors("A", Chain{}), []string{"A"})
}

func TestChainAncestors_DiamondAndCycle(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "A", "B", "C", "D").
		link("A", "B").link("A", "C").link("B", "D").link("C", "D").link("D", "A").
		build()
	chain := GetChain(g, []string{"A"}, DirectionInput)

	got := ChainAncestors("D", chain)
	if len(got) == 0 || got[0] != "D" {
		t.Fatalf("Expected D first, got %v", got)
	}
	sorted := append([]string{}, got...)
	sort.Strings(sorted)
	checkIDs(t, "ChainAncestors(D) members", sorted, []string{"A", "B", "C", "D"})
}

func TestChainAncestors_FollowsChainOrientation(t *testing.T) {
	chain := GetChain(linear(t), []string{"D"}, DirectionOutput)

	// Links point away from D, so A's ancestors lead back to D
	checkIDs(t, "ChainAncestors(A)", ChainAncestors("A", chain), []string{"A", "B", "C", "D"})
	checkIDs(t, "ChainAncestors(D)", ChainAncestors("D", chain), []string{"D"})
}

func TestAllAncestors(t *testing.T) {
	// X is in the chain; Y and Z feed G from outside it
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "X", "Z", "Y").
		node("G", storage.NodeTypeAll).
		link("X", "G").link("Z", "Y").link("Y", "G").
		build()
	chain := GetChain(g, []string{"X"}, DirectionInput)
	known := ChainAncestors("G", chain)
	checkIDs(t, "ChainAncestors(G)", known, []string{"G", "X"})

	checkIDs(t, "AllAncestors(G)", AllAncestors(g, "G", known), []string{"Y", "Z"})
}

func TestAllAncestors_KnownNodesStopTheWalk(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "P", "A", "B").
		link("P", "A").link("A", "B").
		build()

	checkIDs(t, "AllAncestors(B) past known", AllAncestors(g, "B", []string{"B", "A"}), []string{})
	checkIDs(t, "AllAncestors(B)", AllAncestors(g, "B", nil), []string{"A", "P"})
}

func TestAllAncestors_Edges(t *testing.T) {
	g := newTestGraph(t).
		nodes(storage.NodeTypeComp, "A", "B").
		link("A", "B").link("B", "A").
		build()

	// The node itself is never reported, even through a cycle
	checkIDs(t, "AllAncestors(B)", AllAncestors(g, "B", nil), []string{"A"})
	if got := AllAncestors(g, "missing", nil); len(got) != 0 {
		t.Errorf("AllAncestors(missing) = %v, want none", got)
	}
	if got := AllAncestors(nil, "A", nil); len(got) != 0 {
		t.Errorf("AllAncestors on nil graph = %v, want none", got)
	}
}
