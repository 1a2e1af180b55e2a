package architecture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-archflow/pkg/logging"
)

func loadTestdata(t *testing.T, name string) *Dataset {
	t.Helper()
	ds, err := Load(filepath.Join("testdata", name), logging.NewNopLogger())
	require.NoError(t, err)
	return ds
}

func TestLoad_JSONAndYAMLAgree(t *testing.T) {
	fromJSON := loadTestdata(t, "json")
	fromYAML := loadTestdata(t, "yaml")

	assert.Equal(t, fromJSON, fromYAML)
}

func TestLoad_Contents(t *testing.T) {
	ds := loadTestdata(t, "json")

	require.Len(t, ds.Architectures, 2)
	assert.Equal(t, "Plant", ds.Architectures[0].Name)
	assert.Equal(t, 1, ds.DefaultArchitectureID())

	require.Len(t, ds.Networks, 2)
	// Network files are read in name order
	assert.Equal(t, "CN", ds.Networks[0].Network)
	assert.Equal(t, "PPN", ds.Networks[1].Network)

	ppn, err := ds.Network("PPN")
	require.NoError(t, err)
	assert.Equal(t, "Pump-PPN", ppn.Nodes[0].ID)
	assert.Equal(t, "Pump-PPN", ppn.Links[0].Source)
	assert.Equal(t, "PPN-1", ppn.Links[1].ID)
	assert.Equal(t, `flow = pump\nif valve open`, ppn.Nodes[2].Desc)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing architectures file", func(t *testing.T) {
		_, err := Load(t.TempDir(), logging.NewNopLogger())
		assert.ErrorContains(t, err, "no architectures file")
	})

	t.Run("missing networks dir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "architectures.json"), []byte(`{"architectures":[]}`), 0o644))
		_, err := Load(dir, logging.NewNopLogger())
		assert.ErrorContains(t, err, "failed to read networks")
	})

	t.Run("malformed json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "architectures.json"), []byte(`{"architectures":`), 0o644))
		_, err := Load(dir, logging.NewNopLogger())
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("unknown yaml field", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "architectures.yaml"), []byte("architecture: []\n"), 0o644))
		_, err := Load(dir, logging.NewNopLogger())
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("invalid node name", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "invalid"), logging.NewNopLogger())
		assert.ErrorIs(t, err, ErrInvalidDataset)
		assert.ErrorContains(t, err, "Split-Name")
	})
}

func TestDataset_Validate_Duplicates(t *testing.T) {
	ds := &Dataset{
		Networks: []Network{{Network: "A"}, {Network: "A"}},
	}
	assert.ErrorIs(t, ds.Validate(), ErrInvalidDataset)

	ds = &Dataset{
		Architectures: []Architecture{{ID: 1, Name: "x"}, {ID: 1, Name: "y"}},
	}
	assert.ErrorContains(t, ds.Validate(), "duplicate architecture id 1")
}

func TestDataset_Lookups(t *testing.T) {
	ds := loadTestdata(t, "json")

	_, err := ds.Architecture(99)
	assert.ErrorIs(t, err, ErrArchitectureNotFound)

	_, err = ds.Network("NOPE")
	assert.ErrorIs(t, err, ErrNetworkNotFound)

	assert.Equal(t, 0, (&Dataset{}).DefaultArchitectureID())
}

func TestDataset_SearchOptions(t *testing.T) {
	ds := loadTestdata(t, "json")

	opts, err := ds.SearchOptions(1)
	require.NoError(t, err)
	// Layer order: PPN then CN
	assert.Equal(t, []string{"Pump-PPN", "Sensor-CN", "Override-CN"}, opts.Inputs)
	assert.Equal(t, []string{"Flow-PPN", "Alarm-CN"}, opts.Outputs)
	assert.Equal(t, opts.Inputs, opts.ForDirection("input"))
	assert.Equal(t, opts.Outputs, opts.ForDirection("output"))

	_, err = ds.SearchOptions(42)
	assert.ErrorIs(t, err, ErrArchitectureNotFound)
}
