package architecture

import (
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// DataNode is a node record as it appears in a network file.
type DataNode struct {
	Node  string `json:"node" yaml:"node" validate:"required,nodename"`
	Type  string `json:"type" yaml:"type" validate:"required"`
	Class string `json:"class" yaml:"class" validate:"required,oneof=input intermediate output"`
	Desc  string `json:"desc" yaml:"desc"`

	// Filled in by Normalize
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	NodeDepth *int   `json:"nodeDepth,omitempty" yaml:"nodeDepth,omitempty" validate:"omitempty,min=0"`
}

// DataLink is an intra-network link. Endpoints may be bare node names or
// composite ids; Normalize rewrites them to composite ids of the owning
// network.
type DataLink struct {
	Source string `json:"source" yaml:"source" validate:"required"`
	Target string `json:"target" yaml:"target" validate:"required"`
	Type   string `json:"type" yaml:"type" validate:"required,oneof=standard suppress"`
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
}

// Network is one sub-network file.
type Network struct {
	Network     string     `json:"network" yaml:"network" validate:"required"`
	NetworkDesc string     `json:"network_desc" yaml:"network_desc"`
	Nodes       []DataNode `json:"nodes" yaml:"nodes" validate:"dive"`
	Links       []DataLink `json:"links" yaml:"links" validate:"dive"`
}

// Layer places a network in an architecture.
type Layer struct {
	Layer   int    `json:"layer" yaml:"layer"`
	Network string `json:"network" yaml:"network" validate:"required"`
}

// ArcRoute connects a node in one network to a node in another.
type ArcRoute struct {
	SourceNet  string `json:"source_net" yaml:"source_net" validate:"required"`
	SourceNode string `json:"source_node" yaml:"source_node" validate:"required"`
	DestNet    string `json:"dest_net" yaml:"dest_net" validate:"required"`
	DestNode   string `json:"dest_node" yaml:"dest_node" validate:"required"`
}

// SourceID returns the composite id of the route's source node.
func (r ArcRoute) SourceID() string {
	return storage.NodeID(r.SourceNode, r.SourceNet)
}

// DestID returns the composite id of the route's destination node.
func (r ArcRoute) DestID() string {
	return storage.NodeID(r.DestNode, r.DestNet)
}

// Architecture selects the networks and routes of one system topology.
type Architecture struct {
	ID        int        `json:"arch_id" yaml:"arch_id"`
	Name      string     `json:"arch_name" yaml:"arch_name" validate:"required"`
	NumLayers int        `json:"arch_num_layers" yaml:"arch_num_layers" validate:"min=0"`
	Layers    []Layer    `json:"layers" yaml:"layers" validate:"dive"`
	Routes    []ArcRoute `json:"routes" yaml:"routes" validate:"dive"`
}

// HasNetwork reports whether one of the architecture's layers uses network.
func (a *Architecture) HasNetwork(network string) bool {
	for _, l := range a.Layers {
		if l.Network == network {
			return true
		}
	}
	return false
}

// Dataset is every architecture and network loaded from a data directory.
type Dataset struct {
	Architectures []Architecture `json:"architectures" yaml:"architectures" validate:"dive"`
	Networks      []Network      `json:"networks" yaml:"networks" validate:"dive"`
}

// Architecture returns the architecture with the given id.
func (d *Dataset) Architecture(id int) (*Architecture, error) {
	for i := range d.Architectures {
		if d.Architectures[i].ID == id {
			return &d.Architectures[i], nil
		}
	}
	return nil, architectureNotFound(id)
}

// Network returns the network with the given id.
func (d *Dataset) Network(id string) (*Network, error) {
	for i := range d.Networks {
		if d.Networks[i].Network == id {
			return &d.Networks[i], nil
		}
	}
	return nil, networkNotFound(id)
}

// DefaultArchitectureID returns the id of the first architecture, or 0 when
// the dataset has none.
func (d *Dataset) DefaultArchitectureID() int {
	if len(d.Architectures) == 0 {
		return 0
	}
	return d.Architectures[0].ID
}
