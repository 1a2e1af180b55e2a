package storage

// AddEdge inserts a directed edge. Both endpoints must already exist.
// Parallel edges are allowed as long as their IDs differ.
func (g *Graph) AddEdge(edge *Edge) error {
	if g.sealed {
		return NewError("AddEdge").Graph().Cause(ErrGraphSealed).Err()
	}
	if edge == nil || edge.ID == "" {
		return NewError("AddEdge").Edge("").Cause(ErrInvalidID).Err()
	}
	if _, exists := g.edges[edge.ID]; exists {
		return NewError("AddEdge").Edge(edge.ID).Cause(ErrDuplicateEdge).Err()
	}
	if _, ok := g.nodes[edge.Source]; !ok {
		return NewError("AddEdge").Edge(edge.ID).Context("source " + edge.Source).Cause(ErrNodeNotFound).Err()
	}
	if _, ok := g.nodes[edge.Target]; !ok {
		return NewError("AddEdge").Edge(edge.ID).Context("target " + edge.Target).Cause(ErrNodeNotFound).Err()
	}

	g.edges[edge.ID] = edge.Clone()
	g.edgeOrder = append(g.edgeOrder, edge.ID)
	g.outgoingEdges[edge.Source] = append(g.outgoingEdges[edge.Source], edge.ID)
	g.incomingEdges[edge.Target] = append(g.incomingEdges[edge.Target], edge.ID)
	return nil
}

// GetEdge returns a copy of the edge with the given ID.
func (g *Graph) GetEdge(edgeID string) (*Edge, error) {
	edge, ok := g.edges[edgeID]
	if !ok {
		return nil, EdgeNotFoundError(edgeID)
	}
	return edge.Clone(), nil
}

// HasEdge reports whether at least one edge runs from source to target.
func (g *Graph) HasEdge(source, target string) bool {
	if g == nil {
		return false
	}
	for _, edgeID := range g.outgoingEdges[source] {
		if g.edges[edgeID].Target == target {
			return true
		}
	}
	return false
}

// ForEachEdge calls fn for every edge in insertion order without copying.
// fn must not retain or modify the edge.
func (g *Graph) ForEachEdge(fn func(edge *Edge)) {
	if g == nil {
		return
	}
	for _, id := range g.edgeOrder {
		fn(g.edges[id])
	}
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return len(g.edgeOrder)
}
