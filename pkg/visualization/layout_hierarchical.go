package visualization

import (
	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
)

// DepthLayout arranges chain nodes in rows by depth. Start nodes sit in the
// top row for the input direction and in the bottom row otherwise, so the
// signal always flows downwards.
type DepthLayout struct {
	config    *LayoutConfig
	direction algorithms.Direction
}

// NewDepthLayout creates a new depth layout
func NewDepthLayout(config *LayoutConfig, direction algorithms.Direction) *DepthLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &DepthLayout{config: config, direction: direction}
}

// Layers groups chain node ids by depth, in chain order within a layer.
// Layer i holds the nodes of depth i.
func Layers(chain algorithms.Chain) [][]string {
	maxDepth := -1
	for _, n := range chain.Nodes {
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
	}
	layers := make([][]string, maxDepth+1)
	for _, n := range chain.Nodes {
		layers[n.Depth] = append(layers[n.Depth], n.ID)
	}
	return layers
}

// ComputeLayout assigns each node the centre of its row and spreads the row
// evenly across the width.
func (dl *DepthLayout) ComputeLayout(chain algorithms.Chain) map[string]Position {
	positions := make(map[string]Position)

	levels := Layers(chain)
	if len(levels) == 0 {
		return positions
	}

	levelHeight := (dl.config.Height - 2*dl.config.Padding) / float64(len(levels))
	levelWidth := dl.config.Width - 2*dl.config.Padding

	for depth, level := range levels {
		row := depth
		if !dl.direction.Forward() {
			row = len(levels) - 1 - depth
		}
		y := dl.config.Padding + float64(row)*levelHeight + levelHeight/2
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, nodeID := range level {
			x := dl.config.Padding + spacing*float64(nodeIdx+1)
			positions[nodeID] = Position{X: x, Y: y}
		}
	}

	return positions
}
