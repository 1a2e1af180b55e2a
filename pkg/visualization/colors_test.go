package visualization

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

func TestClassColor(t *testing.T) {
	assert.Equal(t, ColorInput, ClassColor(storage.ClassInput))
	assert.Equal(t, ColorIntermediate, ClassColor(storage.ClassIntermediate))
	assert.Equal(t, ColorOutput, ClassColor(storage.ClassOutput))
	assert.Equal(t, ColorIntermediate, ClassColor(storage.NodeClass("other")))
}

func TestFlowColor(t *testing.T) {
	result := sampleFlow()

	assert.Equal(t, ColorFailed, FlowColor(algorithms.ChainNode{ID: "G"}, result))
	assert.Equal(t, ColorInput, FlowColor(algorithms.ChainNode{ID: "S", Class: storage.ClassInput}, result))
	assert.Equal(t, ColorInactive, FlowColor(algorithms.ChainNode{ID: "O", Class: storage.ClassOutput}, result))
}

func TestLinkMarkerColor(t *testing.T) {
	assert.Equal(t, ColorLinkSuppress, LinkMarkerColor(storage.EdgeSuppress))
	assert.Equal(t, ColorLinkActive, LinkMarkerColor(storage.EdgeStandard))
}
