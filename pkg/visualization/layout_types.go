package visualization

import (
	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width   float64 // Canvas width
	Height  float64 // Canvas height
	Padding float64 // Padding from edges
}

// Layout places the nodes of a chain.
type Layout interface {
	ComputeLayout(chain algorithms.Chain) map[string]Position
}
