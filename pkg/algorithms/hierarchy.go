package algorithms

import (
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// HierarchyEntry is one row of the tree projection of a chain.
type HierarchyEntry struct {
	Name              string
	Children          []HierarchyEntry
	CollapsedChildren []HierarchyEntry
}

// HasChildren reports whether the entry has expanded or collapsed children.
func (e *HierarchyEntry) HasChildren() bool {
	return len(e.Children) > 0 || len(e.CollapsedChildren) > 0
}

// Collapse hides the entry's children.
func (e *HierarchyEntry) Collapse() {
	if len(e.Children) == 0 {
		return
	}
	e.CollapsedChildren = e.Children
	e.Children = nil
}

// Expand shows children hidden by Collapse.
func (e *HierarchyEntry) Expand() {
	if len(e.CollapsedChildren) == 0 {
		return
	}
	e.Children = e.CollapsedChildren
	e.CollapsedChildren = nil
}

// Toggle collapses an expanded entry and expands a collapsed one.
func (e *HierarchyEntry) Toggle() {
	if len(e.Children) > 0 {
		e.Collapse()
		return
	}
	e.Expand()
}

// CollapseBelowRoot collapses every entry under the given roots, leaving the
// roots' own children visible.
func CollapseBelowRoot(roots []HierarchyEntry) {
	for i := range roots {
		for j := range roots[i].Children {
			collapseAll(&roots[i].Children[j])
		}
	}
}

func collapseAll(e *HierarchyEntry) {
	for i := range e.Children {
		collapseAll(&e.Children[i])
	}
	e.Collapse()
}

// WalkHierarchy visits visible entries depth-first with their nesting level.
func WalkHierarchy(entries []HierarchyEntry, fn func(e *HierarchyEntry, level int)) {
	walkHierarchy(entries, 0, fn)
}

func walkHierarchy(entries []HierarchyEntry, level int, fn func(e *HierarchyEntry, level int)) {
	for i := range entries {
		fn(&entries[i], level)
		walkHierarchy(entries[i].Children, level+1, fn)
	}
}

type hierarchyBuilder struct {
	graph     *storage.Graph
	direction Direction
	path      map[string]bool // nodes on the current root-to-leaf path
}

// BuildHierarchy projects the graph reachable from each start node into a
// tree, one root per start node present in the graph. Children are
// out-neighbours for DirectionInput and in-neighbours otherwise.
//
// A run of single-child descendants is flattened into siblings at one level;
// when the run ends at a branch point, the last entry of the run holds the
// branches as its Children. A node already on the current root-to-leaf path
// is not repeated, so cycles terminate.
func BuildHierarchy(startNodes []string, g *storage.Graph, direction Direction) []HierarchyEntry {
	roots := []HierarchyEntry{}
	if g == nil {
		return roots
	}

	for _, start := range startNodes {
		if !g.HasNode(start) {
			continue
		}
		b := &hierarchyBuilder{graph: g, direction: direction, path: map[string]bool{start: true}}
		roots = append(roots, HierarchyEntry{
			Name:     start,
			Children: b.expand(b.children(start)),
		})
	}
	return roots
}

// children returns the next-hop nodes of id that are not on the current path.
func (b *hierarchyBuilder) children(id string) []string {
	next := neighbors(b.graph, id, b.direction)
	out := make([]string, 0, len(next))
	for _, n := range next {
		if !b.path[n] {
			out = append(out, n)
		}
	}
	return out
}

func (b *hierarchyBuilder) expand(children []string) []HierarchyEntry {
	if len(children) != 1 {
		return b.branch(children)
	}

	var run []HierarchyEntry
	var entered []string
	for len(children) == 1 {
		child := children[0]
		run = append(run, HierarchyEntry{Name: child})
		b.path[child] = true
		entered = append(entered, child)
		children = b.children(child)
	}
	if len(children) > 0 {
		run[len(run)-1].Children = b.branch(children)
	}

	for _, id := range entered {
		delete(b.path, id)
	}
	return run
}

func (b *hierarchyBuilder) branch(children []string) []HierarchyEntry {
	if len(children) == 0 {
		return nil
	}
	entries := make([]HierarchyEntry, 0, len(children))
	for _, child := range children {
		b.path[child] = true
		entries = append(entries, HierarchyEntry{
			Name:     child,
			Children: b.expand(b.children(child)),
		})
		delete(b.path, child)
	}
	return entries
}
