package architecture

import (
	"fmt"

	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// Normalize returns a copy of n with composite node ids, composite link
// endpoints, "{network}-{index}" link ids and per-network layer depths.
func Normalize(n Network) Network {
	out := Network{
		Network:     n.Network,
		NetworkDesc: n.NetworkDesc,
		Nodes:       make([]DataNode, len(n.Nodes)),
		Links:       make([]DataLink, len(n.Links)),
	}

	for i, node := range n.Nodes {
		node.ID = storage.NodeID(node.Node, n.Network)
		if node.NodeDepth != nil {
			d := *node.NodeDepth
			node.NodeDepth = &d
		}
		out.Nodes[i] = node
	}

	for i, link := range n.Links {
		out.Links[i] = DataLink{
			Source: storage.NodeID(storage.SplitNodeID(link.Source), n.Network),
			Target: storage.NodeID(storage.SplitNodeID(link.Target), n.Network),
			Type:   link.Type,
			ID:     fmt.Sprintf("%s-%d", n.Network, i),
		}
	}

	AssignLayerDepths(out.Nodes, out.Links)
	return out
}

// AssignLayerDepths sets NodeDepth on every node of one network, in place.
// Nodes and links must already carry composite ids.
//
// If every node already has a depth nothing changes. Otherwise nodes with no
// links get 0, sources of root links (links whose source is never a target)
// get 1 and their targets 2. Each further step follows links out of the
// previous targets and gives still-unset targets the next depth. Nodes that
// are never reached, such as members of a cycle with no root, take the depth
// current when the walk runs dry.
func AssignLayerDepths(nodes []DataNode, links []DataLink) {
	if allDepthsSet(nodes) {
		return
	}

	linked := make(map[string]bool, len(links)*2)
	isTarget := make(map[string]bool, len(links))
	for _, l := range links {
		linked[l.Source] = true
		linked[l.Target] = true
		isTarget[l.Target] = true
	}

	rootSources := make(map[string]bool)
	targets := make(map[string]bool)
	for _, l := range links {
		if !isTarget[l.Source] {
			rootSources[l.Source] = true
			targets[l.Target] = true
		}
	}

	depth := 1
	for i := range nodes {
		id := nodes[i].ID
		if !linked[id] {
			setDepth(&nodes[i], 0)
		}
		if rootSources[id] {
			setDepth(&nodes[i], depth)
		}
		if targets[id] {
			setDepth(&nodes[i], depth+1)
		}
	}
	depth += 2

	for iterations := 0; !allDepthsSet(nodes); iterations++ {
		next := make(map[string]bool)
		for _, l := range links {
			if targets[l.Source] {
				next[l.Target] = true
			}
		}
		targets = next

		if len(targets) == 0 || iterations > len(nodes) {
			for i := range nodes {
				if nodes[i].NodeDepth == nil {
					setDepth(&nodes[i], depth)
				}
			}
			return
		}

		for i := range nodes {
			if targets[nodes[i].ID] && unsetOrZero(nodes[i].NodeDepth) {
				setDepth(&nodes[i], depth)
			}
		}
		depth++
	}
}

func allDepthsSet(nodes []DataNode) bool {
	for _, n := range nodes {
		if n.NodeDepth == nil {
			return false
		}
	}
	return true
}

func unsetOrZero(d *int) bool {
	return d == nil || *d == 0
}

func setDepth(n *DataNode, depth int) {
	d := depth
	n.NodeDepth = &d
}
