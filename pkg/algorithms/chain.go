package algorithms

import (
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

type bfsEntry struct {
	nodeID string
	depth  int
}

// reachFrom runs a breadth-first traversal from start and returns the
// reached nodes in discovery order with their shortest hop count.
func reachFrom(g *storage.Graph, start string, direction Direction) ([]string, map[string]int) {
	depths := map[string]int{start: 0}
	order := []string{start}

	queue := []bfsEntry{{nodeID: start, depth: 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range neighbors(g, current.nodeID, direction) {
			if _, seen := depths[next]; seen {
				continue
			}
			// Mark before enqueueing so a node is queued once
			depths[next] = current.depth + 1
			order = append(order, next)
			queue = append(queue, bfsEntry{nodeID: next, depth: current.depth + 1})
		}
	}
	return order, depths
}

// GetChain computes the subgraph reachable from startNodes.
//
// Each start node is traversed independently. A node reached from several
// start nodes keeps the depth from the first start node, in startNodes order,
// that reached it, even if a later one reaches it in fewer hops. Links are
// the base graph edges whose endpoints were both reached from the same start
// node, deduplicated by id. For DirectionOutput links are reversed so Source
// is the end closer to the start node.
//
// Start nodes absent from the graph are ignored; a nil graph or an empty
// start set yields an empty chain.
func GetChain(g *storage.Graph, startNodes []string, direction Direction) Chain {
	chain := Chain{Nodes: []ChainNode{}, Links: []ChainLink{}}
	if g == nil || len(startNodes) == 0 {
		return chain
	}

	seenNodes := make(map[string]struct{})
	seenLinks := make(map[string]struct{})

	for _, start := range startNodes {
		if !g.HasNode(start) {
			continue
		}
		order, depths := reachFrom(g, start, direction)

		g.ForEachEdge(func(e *storage.Edge) {
			if _, ok := seenLinks[e.ID]; ok {
				return
			}
			_, srcIn := depths[e.Source]
			_, dstIn := depths[e.Target]
			if !srcIn || !dstIn {
				return
			}
			seenLinks[e.ID] = struct{}{}

			link := ChainLink{ID: e.ID, Source: e.Source, Target: e.Target, Type: e.Type}
			if !direction.Forward() {
				link.Source, link.Target = e.Target, e.Source
			}
			chain.Links = append(chain.Links, link)
		})

		for _, id := range order {
			if _, ok := seenNodes[id]; ok {
				continue
			}
			seenNodes[id] = struct{}{}
			node, err := g.GetNode(id)
			if err != nil {
				continue
			}
			chain.Nodes = append(chain.Nodes, chainNodeFrom(node, depths[id]))
		}
	}
	return chain
}
