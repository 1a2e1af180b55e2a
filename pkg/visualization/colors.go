package visualization

import (
	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// Palette colours shared by every renderer.
const (
	ColorInput        = "#2171b5"
	ColorIntermediate = "#808080"
	ColorOutput       = "#fd8d3c"
	ColorFailed       = "#cb181d"
	ColorInactive     = "#C0C0C0"
	ColorLinkActive   = "#41ab5d"
	ColorLinkSuppress = "#cb181d"
	ColorLink         = "#C0C0C0"
)

// ClassColor maps a node class to its fill. Unknown classes are drawn as
// intermediate nodes.
func ClassColor(class storage.NodeClass) string {
	switch class {
	case storage.ClassInput:
		return ColorInput
	case storage.ClassOutput:
		return ColorOutput
	default:
		return ColorIntermediate
	}
}

// FlowColor is the fill of a chain node after a propagation run: failed
// nodes are red, nodes the signal never reached are grey and the rest keep
// their class colour.
func FlowColor(node algorithms.ChainNode, result algorithms.FlowResult) string {
	if result.IsFailed(node.ID) {
		return ColorFailed
	}
	if !result.Passed(node.ID) {
		return ColorInactive
	}
	return ClassColor(node.Class)
}

// LinkMarkerColor is the arrow colour of an animated link.
func LinkMarkerColor(t storage.EdgeType) string {
	if t == storage.EdgeSuppress {
		return ColorLinkSuppress
	}
	return ColorLinkActive
}
