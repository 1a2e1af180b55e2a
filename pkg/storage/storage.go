package storage

import "strings"

// Graph is an in-memory directed attributed multigraph for one architecture.
//
// A graph is populated with AddNode/AddEdge and then sealed. Once sealed it
// is read-only, so every query sees the same nodes and edges for the life of
// the graph; derived attributes such as depth or failure state are carried by
// traversal results, never written back onto the graph.
//
// Graph is not safe for concurrent mutation. A sealed graph may be read from
// any number of goroutines.
type Graph struct {
	nodes map[string]*Node
	edges map[string]*Edge

	// Insertion order, used for deterministic iteration
	nodeOrder []string
	edgeOrder []string

	outgoingEdges map[string][]string // node ID -> outgoing edge IDs
	incomingEdges map[string][]string // node ID -> incoming edge IDs

	sealed bool
}

// NewGraph creates an empty, unsealed graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:         make(map[string]*Node),
		edges:         make(map[string]*Edge),
		outgoingEdges: make(map[string][]string),
		incomingEdges: make(map[string][]string),
	}
}

// Seal makes the graph read-only. Sealing twice is a no-op.
func (g *Graph) Seal() {
	g.sealed = true
}

// Sealed reports whether the graph rejects further mutation.
func (g *Graph) Sealed() bool {
	return g.sealed
}

// NodeID builds the composite node key used across all sub-networks.
func NodeID(name, network string) string {
	return name + "-" + network
}

// SplitNodeID returns the node name part of a composite key. Names never
// contain the separator, network ids may.
func SplitNodeID(id string) string {
	name, _, _ := strings.Cut(id, "-")
	return name
}
