package visualization

import (
	"strings"

	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// Describe renders the detail text shown for a node: name, network, class,
// type and description. A comp node's description is source-like, so its
// escaped "\n" sequences become line breaks and the lines are indented as a
// block.
func Describe(node *storage.Node) string {
	if node == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(node.Name() + "\n")
	sb.WriteString("network: " + node.Network + "\n")
	sb.WriteString(string(node.Class) + "\n")
	sb.WriteString("type: " + string(node.Type) + "\n")

	if node.Desc == "" {
		return sb.String()
	}
	if node.Type != storage.NodeTypeComp {
		sb.WriteString(node.Desc + "\n")
		return sb.String()
	}

	sb.WriteString("\n")
	for _, line := range strings.Split(node.Desc, `\n`) {
		sb.WriteString("    " + line + "\n")
	}
	return sb.String()
}
