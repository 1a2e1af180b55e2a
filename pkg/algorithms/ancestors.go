package algorithms

import (
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// ChainAncestors returns nodeID and every node upstream of it along the
// chain's links, nodeID first. Only chain nodes and links are considered.
// A node with no inbound chain links, or one outside the chain, yields just
// itself.
func ChainAncestors(nodeID string, chain Chain) []string {
	inbound := make(map[string][]string, len(chain.Nodes))
	for _, l := range chain.Links {
		inbound[l.Target] = append(inbound[l.Target], l.Source)
	}
	return sweepUpstream(nodeID, func(id string) []string { return inbound[id] }, nil, true)
}

// AllAncestors walks incoming edges of the full graph from nodeID and
// returns the upstream nodes that are neither nodeID nor in known. Nodes in
// known stop the walk, so only provenance outside the already highlighted
// set is revealed. The result is empty when nothing new is found.
func AllAncestors(g *storage.Graph, nodeID string, known []string) []string {
	if g == nil || !g.HasNode(nodeID) {
		return []string{}
	}
	exclude := make(map[string]struct{}, len(known))
	for _, id := range known {
		exclude[id] = struct{}{}
	}
	return sweepUpstream(nodeID, g.InNeighbors, exclude, false)
}

// sweepUpstream expands a frontier of inbound neighbours until a sweep
// discovers nothing new. Only newly discovered nodes outside exclude join the
// next frontier.
func sweepUpstream(nodeID string, inbound func(string) []string, exclude map[string]struct{}, includeSelf bool) []string {
	visited := map[string]struct{}{nodeID: {}}
	result := []string{}
	if includeSelf {
		result = append(result, nodeID)
	}

	frontier := []string{nodeID}
	for len(frontier) > 0 {
		var next []string
		for _, id := range frontier {
			for _, parent := range inbound(id) {
				if _, seen := visited[parent]; seen {
					continue
				}
				visited[parent] = struct{}{}
				if _, skip := exclude[parent]; skip {
					continue
				}
				next = append(next, parent)
				result = append(result, parent)
			}
		}
		frontier = next
	}
	return result
}
