package storage

// NodeType determines the logical gate a node applies during flow propagation.
type NodeType string

const (
	NodeTypeComp        NodeType = "comp"
	NodeTypeAll         NodeType = "all"
	NodeTypeAny         NodeType = "any"
	NodeTypeSuppression NodeType = "suppression"
)

// IsGate reports whether the type evaluates inbound activation.
// comp and unrecognised types pass through unconditionally.
func (t NodeType) IsGate() bool {
	switch t {
	case NodeTypeAll, NodeTypeAny, NodeTypeSuppression:
		return true
	default:
		return false
	}
}

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	return t == NodeTypeComp || t.IsGate()
}

// NodeClass is the flow role of a node within its network.
type NodeClass string

const (
	ClassInput        NodeClass = "input"
	ClassIntermediate NodeClass = "intermediate"
	ClassOutput       NodeClass = "output"
)

// Valid reports whether c is one of the known node classes.
func (c NodeClass) Valid() bool {
	switch c {
	case ClassInput, ClassIntermediate, ClassOutput:
		return true
	default:
		return false
	}
}

// EdgeType distinguishes ordinary links from inhibitory ones.
type EdgeType string

const (
	EdgeStandard EdgeType = "standard"
	EdgeSuppress EdgeType = "suppress"
)

// Valid reports whether t is one of the known edge types.
func (t EdgeType) Valid() bool {
	return t == EdgeStandard || t == EdgeSuppress
}

// Node is a graph vertex. ID is the composite "{name}-{network}" key.
type Node struct {
	ID         string
	Type       NodeType
	Class      NodeClass
	Desc       string
	Network    string
	LayerDepth int // layer of the node inside its own network
}

// Name returns the node name without its network suffix.
func (n *Node) Name() string {
	return SplitNodeID(n.ID)
}

// Edge is a directed link between two nodes. Parallel edges between the
// same pair are distinct edges with distinct IDs.
type Edge struct {
	ID     string
	Source string
	Target string
	Type   EdgeType
}

// Clone creates a copy of a node
func (n *Node) Clone() *Node {
	clone := *n
	return &clone
}

// Clone creates a copy of an edge
func (e *Edge) Clone() *Edge {
	clone := *e
	return &clone
}

// Statistics summarises a graph.
type Statistics struct {
	NodeCount     int
	EdgeCount     int
	NetworkCount  int
	SuppressEdges int
}
