package storage

// GetOutgoingEdges returns copies of all edges leaving a node, in insertion order.
func (g *Graph) GetOutgoingEdges(nodeID string) []*Edge {
	if g == nil {
		return []*Edge{}
	}
	return g.buildEdgeListFromIDs(g.outgoingEdges[nodeID])
}

// GetIncomingEdges returns copies of all edges entering a node, in insertion order.
func (g *Graph) GetIncomingEdges(nodeID string) []*Edge {
	if g == nil {
		return []*Edge{}
	}
	return g.buildEdgeListFromIDs(g.incomingEdges[nodeID])
}

// OutNeighbors returns the distinct targets of a node's outgoing edges in
// first-edge order.
func (g *Graph) OutNeighbors(nodeID string) []string {
	if g == nil {
		return nil
	}
	return g.distinctEndpoints(g.outgoingEdges[nodeID], true)
}

// InNeighbors returns the distinct sources of a node's incoming edges in
// first-edge order.
func (g *Graph) InNeighbors(nodeID string) []string {
	if g == nil {
		return nil
	}
	return g.distinctEndpoints(g.incomingEdges[nodeID], false)
}

// InDegree returns the number of incoming edges, counting parallel edges.
func (g *Graph) InDegree(nodeID string) int {
	return len(g.incomingEdges[nodeID])
}

// OutDegree returns the number of outgoing edges, counting parallel edges.
func (g *Graph) OutDegree(nodeID string) int {
	return len(g.outgoingEdges[nodeID])
}

// GetStatistics returns node, edge and network counts.
func (g *Graph) GetStatistics() Statistics {
	stats := Statistics{
		NodeCount: len(g.nodeOrder),
		EdgeCount: len(g.edgeOrder),
	}

	networks := make(map[string]struct{})
	for _, node := range g.nodes {
		networks[node.Network] = struct{}{}
	}
	stats.NetworkCount = len(networks)

	for _, edge := range g.edges {
		if edge.Type == EdgeSuppress {
			stats.SuppressEdges++
		}
	}
	return stats
}

func (g *Graph) buildEdgeListFromIDs(edgeIDs []string) []*Edge {
	if len(edgeIDs) == 0 {
		return []*Edge{}
	}
	edges := make([]*Edge, 0, len(edgeIDs))
	for _, id := range edgeIDs {
		edges = append(edges, g.edges[id].Clone())
	}
	return edges
}

func (g *Graph) distinctEndpoints(edgeIDs []string, outgoing bool) []string {
	seen := make(map[string]struct{}, len(edgeIDs))
	result := make([]string, 0, len(edgeIDs))
	for _, id := range edgeIDs {
		edge := g.edges[id]
		endpoint := edge.Source
		if outgoing {
			endpoint = edge.Target
		}
		if _, ok := seen[endpoint]; ok {
			continue
		}
		seen[endpoint] = struct{}{}
		result = append(result, endpoint)
	}
	return result
}
