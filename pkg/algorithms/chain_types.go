package algorithms

import (
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// Direction selects which adjacency a traversal follows.
type Direction string

const (
	// DirectionInput traces downstream along outgoing edges.
	DirectionInput Direction = "input"
	// DirectionOutput traces upstream along incoming edges.
	DirectionOutput Direction = "output"
)

// ParseDirection maps "input" to DirectionInput and everything else to
// DirectionOutput.
func ParseDirection(s string) Direction {
	if Direction(s) == DirectionInput {
		return DirectionInput
	}
	return DirectionOutput
}

// Forward reports whether the direction follows outgoing edges.
func (d Direction) Forward() bool {
	return d == DirectionInput
}

func (d Direction) String() string {
	return string(d)
}

// neighbors returns the next hop of id in direction d.
func neighbors(g *storage.Graph, id string, d Direction) []string {
	if d.Forward() {
		return g.OutNeighbors(id)
	}
	return g.InNeighbors(id)
}

// ChainNode is a node of a chain with its traversal attributes.
type ChainNode struct {
	ID      string            `json:"id"`
	Type    storage.NodeType  `json:"type"`
	Class   storage.NodeClass `json:"class"`
	Desc    string            `json:"desc,omitempty"`
	Network string            `json:"network"`
	Depth   int               `json:"depth"`
	Fail    bool              `json:"fail,omitempty"`
}

// ChainLink is an edge of a chain, oriented so Source is the end closer to
// the start set.
type ChainLink struct {
	ID     string           `json:"id"`
	Source string           `json:"source"`
	Target string           `json:"target"`
	Type   storage.EdgeType `json:"type"`
}

// Chain is the reachable subgraph of a set of start nodes.
type Chain struct {
	Nodes []ChainNode `json:"nodes"`
	Links []ChainLink `json:"links"`
}

// Empty reports whether the chain has no nodes.
func (c Chain) Empty() bool {
	return len(c.Nodes) == 0
}

// Node returns the chain node with the given id.
func (c Chain) Node(id string) (ChainNode, bool) {
	for _, n := range c.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return ChainNode{}, false
}

// Contains reports whether id is a chain node.
func (c Chain) Contains(id string) bool {
	_, ok := c.Node(id)
	return ok
}

// NodeIDs returns the chain node ids in chain order.
func (c Chain) NodeIDs() []string {
	ids := make([]string, len(c.Nodes))
	for i, n := range c.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Depths returns node id -> depth.
func (c Chain) Depths() map[string]int {
	depths := make(map[string]int, len(c.Nodes))
	for _, n := range c.Nodes {
		depths[n.ID] = n.Depth
	}
	return depths
}

func chainNodeFrom(n *storage.Node, depth int) ChainNode {
	return ChainNode{
		ID:      n.ID,
		Type:    n.Type,
		Class:   n.Class,
		Desc:    n.Desc,
		Network: n.Network,
		Depth:   depth,
	}
}
