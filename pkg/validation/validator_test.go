package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleNode struct {
	Node  string `validate:"required,nodename"`
	Type  string `validate:"required,oneof=comp all any suppression"`
	Class string `validate:"required,oneof=input intermediate output"`
}

type sampleNetwork struct {
	Network string       `validate:"required"`
	Nodes   []sampleNode `validate:"dive"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr string
	}{
		{
			name:  "valid",
			value: &sampleNetwork{Network: "PPN", Nodes: []sampleNode{{Node: "Pump", Type: "any", Class: "input"}}},
		},
		{
			name:    "missing network",
			value:   &sampleNetwork{},
			wantErr: "sampleNetwork.Network: field is required",
		},
		{
			name:    "bad node type",
			value:   &sampleNetwork{Network: "PPN", Nodes: []sampleNode{{Node: "Pump", Type: "xor", Class: "input"}}},
			wantErr: `sampleNetwork.Nodes[0].Type: value "xor" must be one of [comp all any suppression]`,
		},
		{
			name:    "dash in node name",
			value:   &sampleNetwork{Network: "PPN", Nodes: []sampleNode{{Node: "Pump-1", Type: "any", Class: "input"}}},
			wantErr: `sampleNetwork.Nodes[0].Node: "Pump-1" is not a valid node name`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestValidateStruct_Nil(t *testing.T) {
	assert.Error(t, ValidateStruct(nil))
}

func TestValidateNodeName(t *testing.T) {
	assert.NoError(t, ValidateNodeName("PressureSensor"))
	assert.Error(t, ValidateNodeName(""))
	assert.Error(t, ValidateNodeName("   "))
	assert.Error(t, ValidateNodeName("a-b"))

	long := make([]byte, MaxNameLength+1)
	for i := range long {
		long[i] = 'x'
	}
	assert.Error(t, ValidateNodeName(string(long)))
}

func TestValidateDirection(t *testing.T) {
	assert.NoError(t, ValidateDirection("input"))
	assert.NoError(t, ValidateDirection("output"))
	assert.Error(t, ValidateDirection("both"))
}
