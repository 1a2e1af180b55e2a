package algorithms

import (
	"sort"

	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// FlowResult is the outcome of one propagation run. Nothing is written back
// onto the graph or the chain.
type FlowResult struct {
	// Nodes are the activated nodes, stable-sorted by depth, with Fail set on
	// nodes whose gate failed.
	Nodes []ChainNode `json:"nodes"`
	// Links are the chain links with both ends activated.
	Links []ChainLink `json:"links"`
	// Excluded lists nodes cut off downstream of a failure, in the order
	// they were excluded.
	Excluded []string `json:"excluded"`
}

// Failed returns the ids of failed nodes in activation order.
func (r FlowResult) Failed() []string {
	failed := []string{}
	for _, n := range r.Nodes {
		if n.Fail {
			failed = append(failed, n.ID)
		}
	}
	return failed
}

// IsFailed reports whether id was activated and failed.
func (r FlowResult) IsFailed(id string) bool {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n.Fail
		}
	}
	return false
}

// Passed reports whether id was activated without failing.
func (r FlowResult) Passed(id string) bool {
	for _, n := range r.Nodes {
		if n.ID == id {
			return !n.Fail
		}
	}
	return false
}

// GateInputs counts the inbound links a gate is evaluated against.
type GateInputs struct {
	ChainStandard int // standard chain links into the node
	ChainSuppress int // suppress chain links into the node
	AllStandard   int // standard base graph edges into the node
	AllSuppress   int // suppress base graph edges into the node
	AllInbound    int // every base graph edge into the node
}

// EvaluateGate decides whether a node of type t passes given its inputs.
//
//	any:         at least one standard chain link is active
//	all:         every base graph inbound edge is an active standard link
//	suppression: every standard input is active, not every suppress input
//	             is active, and no other inbound edge is missing
//
// comp and unknown types always pass.
func EvaluateGate(t storage.NodeType, in GateInputs) bool {
	switch t {
	case storage.NodeTypeAny:
		return in.ChainStandard > 0
	case storage.NodeTypeAll:
		return in.ChainStandard == in.AllInbound
	case storage.NodeTypeSuppression:
		if in.AllStandard != in.ChainStandard {
			return false
		}
		if in.AllSuppress == in.ChainSuppress {
			return false
		}
		allNonSuppress := in.AllInbound - in.AllSuppress
		return allNonSuppress == in.ChainStandard
	default:
		return true
	}
}

// gateInputs gathers the inbound counts of id from the chain links and the
// base graph.
func gateInputs(g *storage.Graph, id string, chainStandard, chainSuppress map[string]int) GateInputs {
	in := GateInputs{
		ChainStandard: chainStandard[id],
		ChainSuppress: chainSuppress[id],
	}
	for _, e := range g.GetIncomingEdges(id) {
		in.AllInbound++
		switch e.Type {
		case storage.EdgeStandard:
			in.AllStandard++
		case storage.EdgeSuppress:
			in.AllSuppress++
		}
	}
	return in
}

// Propagate simulates a signal flowing from startNodes through the chain.
//
// Chain nodes are visited in chain order. Excluded nodes are skipped and
// start nodes are activated without evaluation. Every other node is
// evaluated with EvaluateGate. A passing node activates its chain
// out-neighbours and itself. A failing node is activated with Fail set and
// everything downstream of it in the base graph is excluded from further
// evaluation. Each node is activated at most once.
//
// The chain must come from GetChain in the input direction: gate inputs
// compare chain links against the base graph's inbound edges, which only
// line up when chain links keep the base orientation.
func Propagate(g *storage.Graph, chain Chain, startNodes []string) FlowResult {
	result := FlowResult{Nodes: []ChainNode{}, Links: []ChainLink{}, Excluded: []string{}}
	if g == nil || chain.Empty() {
		return result
	}

	isStart := make(map[string]bool, len(startNodes))
	for _, id := range startNodes {
		isStart[id] = true
	}

	inChain := make(map[string]ChainNode, len(chain.Nodes))
	for _, n := range chain.Nodes {
		inChain[n.ID] = n
	}

	chainStandard := make(map[string]int)
	chainSuppress := make(map[string]int)
	for _, l := range chain.Links {
		switch l.Type {
		case storage.EdgeStandard:
			chainStandard[l.Target]++
		case storage.EdgeSuppress:
			chainSuppress[l.Target]++
		}
	}

	var activated []string
	isActivated := make(map[string]bool)
	activate := func(id string) {
		if isActivated[id] {
			return
		}
		isActivated[id] = true
		activated = append(activated, id)
	}

	excluded := make(map[string]bool)
	failed := make(map[string]bool)

	for _, d := range chain.Nodes {
		if excluded[d.ID] {
			continue
		}
		if isStart[d.ID] {
			activate(d.ID)
			continue
		}

		if EvaluateGate(d.Type, gateInputs(g, d.ID, chainStandard, chainSuppress)) {
			for _, next := range append(g.OutNeighbors(d.ID), d.ID) {
				if _, ok := inChain[next]; ok {
					activate(next)
				}
			}
			continue
		}

		failed[d.ID] = true
		for _, id := range downstream(g, d.ID) {
			if !excluded[id] {
				excluded[id] = true
				result.Excluded = append(result.Excluded, id)
			}
		}
		activate(d.ID)
	}

	for _, id := range activated {
		n := inChain[id]
		n.Fail = failed[id]
		result.Nodes = append(result.Nodes, n)
	}
	sort.SliceStable(result.Nodes, func(i, j int) bool {
		return result.Nodes[i].Depth < result.Nodes[j].Depth
	})

	for _, l := range chain.Links {
		if isActivated[l.Source] && isActivated[l.Target] {
			result.Links = append(result.Links, l)
		}
	}
	return result
}

// downstream returns every node reachable from id along outgoing base graph
// edges, breadth first. id itself is only included if a cycle leads back to
// it.
func downstream(g *storage.Graph, id string) []string {
	visited := make(map[string]bool)
	var order []string

	frontier := g.OutNeighbors(id)
	for _, n := range frontier {
		if !visited[n] {
			visited[n] = true
			order = append(order, n)
		}
	}
	for len(frontier) > 0 {
		var next []string
		for _, n := range frontier {
			for _, out := range g.OutNeighbors(n) {
				if visited[out] {
					continue
				}
				visited[out] = true
				order = append(order, out)
				next = append(next, out)
			}
		}
		frontier = next
	}
	return order
}
