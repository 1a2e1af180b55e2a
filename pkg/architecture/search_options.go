package architecture

import "github.com/dd0wney/cluso-archflow/pkg/storage"

// SearchOptions are the start node candidates of an architecture.
type SearchOptions struct {
	Inputs  []string
	Outputs []string
}

// ForDirection returns the candidates valid as start nodes in a direction:
// inputs for "input", outputs otherwise.
func (o SearchOptions) ForDirection(direction string) []string {
	if direction == "input" {
		return o.Inputs
	}
	return o.Outputs
}

// SearchOptions collects the input and output node ids of every layer
// network, in layer order. Layers naming unknown networks contribute nothing.
func (d *Dataset) SearchOptions(archID int) (SearchOptions, error) {
	arch, err := d.Architecture(archID)
	if err != nil {
		return SearchOptions{}, err
	}

	opts := SearchOptions{Inputs: []string{}, Outputs: []string{}}
	for _, l := range arch.Layers {
		net, err := d.Network(l.Network)
		if err != nil {
			continue
		}
		for _, n := range net.Nodes {
			id := n.ID
			if id == "" {
				id = storage.NodeID(n.Node, net.Network)
			}
			switch storage.NodeClass(n.Class) {
			case storage.ClassInput:
				opts.Inputs = append(opts.Inputs, id)
			case storage.ClassOutput:
				opts.Outputs = append(opts.Outputs, id)
			}
		}
	}
	return opts, nil
}
