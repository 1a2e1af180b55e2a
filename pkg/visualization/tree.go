package visualization

import (
	"fmt"
	"io"
	"strings"

	"github.com/m1gwings/treedrawer/tree"

	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
)

// RenderTree writes the visible part of a hierarchy as an outline, two
// spaces per level. Collapsed entries show the number of hidden children.
func RenderTree(w io.Writer, roots []algorithms.HierarchyEntry) error {
	var err error
	algorithms.WalkHierarchy(roots, func(e *algorithms.HierarchyEntry, level int) {
		if err != nil {
			return
		}
		line := strings.Repeat("  ", level) + e.Name
		if n := len(e.CollapsedChildren); n > 0 {
			line += fmt.Sprintf(" [+%d]", n)
		}
		_, err = fmt.Fprintln(w, line)
	})
	return err
}

// TreeString is RenderTree into a string.
func TreeString(roots []algorithms.HierarchyEntry) string {
	var sb strings.Builder
	RenderTree(&sb, roots)
	return sb.String()
}

// DrawTree draws one root and its visible descendants with box characters.
func DrawTree(root algorithms.HierarchyEntry) string {
	t := tree.NewTree(tree.NodeString(root.Name))
	addChildren(t, root.Children)
	return t.String()
}

func addChildren(parent *tree.Tree, children []algorithms.HierarchyEntry) {
	for _, c := range children {
		name := c.Name
		if n := len(c.CollapsedChildren); n > 0 {
			name = fmt.Sprintf("%s [+%d]", name, n)
		}
		addChildren(parent.AddChild(tree.NodeString(name)), c.Children)
	}
}
