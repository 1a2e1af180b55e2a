package storage

// AddNode inserts a node. The ID must be non-empty and unused. The stored
// description is passed through SanitizeDescription.
func (g *Graph) AddNode(node *Node) error {
	if g.sealed {
		return NewError("AddNode").Graph().Cause(ErrGraphSealed).Err()
	}
	if node == nil || node.ID == "" {
		return NewError("AddNode").Node("").Cause(ErrInvalidID).Err()
	}
	if _, exists := g.nodes[node.ID]; exists {
		return NewError("AddNode").Node(node.ID).Cause(ErrDuplicateNode).Err()
	}

	stored := node.Clone()
	stored.Desc = SanitizeDescription(stored.Desc)
	g.nodes[node.ID] = stored
	g.nodeOrder = append(g.nodeOrder, node.ID)
	return nil
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(nodeID string) bool {
	if g == nil {
		return false
	}
	_, ok := g.nodes[nodeID]
	return ok
}

// GetNode returns a copy of the node with the given ID.
func (g *Graph) GetNode(nodeID string) (*Node, error) {
	node, ok := g.nodes[nodeID]
	if !ok {
		return nil, NodeNotFoundError(nodeID)
	}
	return node.Clone(), nil
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		nodes = append(nodes, g.nodes[id].Clone())
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.nodeOrder))
	copy(ids, g.nodeOrder)
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.nodeOrder)
}
