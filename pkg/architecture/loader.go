package architecture

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-archflow/pkg/logging"
	"github.com/dd0wney/cluso-archflow/pkg/validation"
)

const (
	// ArchitecturesBase is the base name of the architectures file.
	ArchitecturesBase = "architectures"

	// NetworksDir is the directory holding one file per network.
	NetworksDir = "networks"
)

var dataExtensions = []string{".json", ".yaml", ".yml"}

// Load reads a dataset directory:
//
//	dir/architectures.{json,yaml,yml}
//	dir/networks/*.{json,yaml,yml}
//
// Every file is validated and every network normalised before returning.
func Load(dir string, logger logging.Logger) (*Dataset, error) {
	logger = logging.OrDefault(logger).With(logging.Component("loader"))
	timer := logging.StartTimer(logger, "dataset loaded", logging.Path(dir))

	archPath, err := findArchitecturesFile(dir)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}

	var archFile struct {
		Architectures []Architecture `json:"architectures" yaml:"architectures"`
	}
	if err := decodeFile(archPath, &archFile); err != nil {
		timer.EndError(err)
		return nil, err
	}

	networks, err := loadNetworks(filepath.Join(dir, NetworksDir))
	if err != nil {
		timer.EndError(err)
		return nil, err
	}

	ds := &Dataset{Architectures: archFile.Architectures, Networks: networks}
	if err := ds.Validate(); err != nil {
		timer.EndError(err)
		return nil, err
	}
	for i := range ds.Networks {
		ds.Networks[i] = Normalize(ds.Networks[i])
	}

	timer.End(
		logging.Int("architectures", len(ds.Architectures)),
		logging.Int("networks", len(ds.Networks)),
	)
	return ds, nil
}

// Validate checks struct tags and cross-record constraints.
func (d *Dataset) Validate() error {
	if err := validation.ValidateStruct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	seenNets := make(map[string]struct{}, len(d.Networks))
	for _, n := range d.Networks {
		if _, dup := seenNets[n.Network]; dup {
			return fmt.Errorf("%w: duplicate network %q", ErrInvalidDataset, n.Network)
		}
		seenNets[n.Network] = struct{}{}
	}

	seenArchs := make(map[int]struct{}, len(d.Architectures))
	for _, a := range d.Architectures {
		if _, dup := seenArchs[a.ID]; dup {
			return fmt.Errorf("%w: duplicate architecture id %d", ErrInvalidDataset, a.ID)
		}
		seenArchs[a.ID] = struct{}{}
	}
	return nil
}

func findArchitecturesFile(dir string) (string, error) {
	for _, ext := range dataExtensions {
		path := filepath.Join(dir, ArchitecturesBase+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no %s file in %s", ArchitecturesBase, dir)
}

func loadNetworks(dir string) ([]Network, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read networks: %w", err)
	}

	var networks []Network
	for _, entry := range entries {
		if entry.IsDir() || !isDataFile(entry.Name()) {
			continue
		}
		var n Network
		if err := decodeFile(filepath.Join(dir, entry.Name()), &n); err != nil {
			return nil, err
		}
		networks = append(networks, n)
	}
	return networks, nil
}

func isDataFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range dataExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// decodeFile unmarshals JSON or YAML depending on the file extension.
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return nil
}
