package architecture

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-archflow/pkg/logging"
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// SkippedRoute is a route left out of the graph because an endpoint is missing.
type SkippedRoute struct {
	Index   int
	Route   ArcRoute
	Missing string // composite id of the absent endpoint
}

// SkippedLink is an intra-network link that could not be added.
type SkippedLink struct {
	Network string
	LinkID  string
	Reason  error
}

// BuildReport lists the data integrity problems met while building a graph.
// None of them stop the build.
type BuildReport struct {
	SkippedRoutes  []SkippedRoute
	SkippedLinks   []SkippedLink
	DuplicateNodes []string
}

// Clean reports whether the build met no integrity problems.
func (r BuildReport) Clean() bool {
	return len(r.SkippedRoutes) == 0 && len(r.SkippedLinks) == 0 && len(r.DuplicateNodes) == 0
}

// BuildGraph builds a sealed graph from sub-networks and cross-network routes.
//
// Every node is added with its type, class, description, network and layer
// depth; every link with its type. Parallel edges are kept. A route whose
// endpoint is missing is logged, reported and skipped. Routes become
// "standard" edges with ids "arch{index}".
func BuildGraph(networks []Network, routes []ArcRoute, logger logging.Logger) (*storage.Graph, BuildReport) {
	logger = logging.OrDefault(logger).With(logging.Component("graph_builder"))
	g := storage.NewGraph()
	var report BuildReport

	for _, net := range networks {
		for _, n := range net.Nodes {
			node := &storage.Node{
				ID:      storage.NodeID(n.Node, net.Network),
				Type:    storage.NodeType(n.Type),
				Class:   storage.NodeClass(n.Class),
				Desc:    n.Desc,
				Network: net.Network,
			}
			if n.NodeDepth != nil {
				node.LayerDepth = *n.NodeDepth
			}
			if err := g.AddNode(node); err != nil {
				if errors.Is(err, storage.ErrDuplicateNode) {
					report.DuplicateNodes = append(report.DuplicateNodes, node.ID)
					logger.Warn("duplicate node id, keeping first definition",
						logging.NodeID(node.ID), logging.Network(net.Network))
					continue
				}
				logger.Warn("node skipped", logging.NodeID(node.ID), logging.Error(err))
			}
		}

		for i, l := range net.Links {
			edge := &storage.Edge{
				ID:     l.ID,
				Source: storage.NodeID(storage.SplitNodeID(l.Source), net.Network),
				Target: storage.NodeID(storage.SplitNodeID(l.Target), net.Network),
				Type:   storage.EdgeType(l.Type),
			}
			if edge.ID == "" {
				edge.ID = fmt.Sprintf("%s-%d", net.Network, i)
			}
			if err := g.AddEdge(edge); err != nil {
				report.SkippedLinks = append(report.SkippedLinks, SkippedLink{
					Network: net.Network,
					LinkID:  edge.ID,
					Reason:  err,
				})
				logger.Warn("link skipped", logging.EdgeID(edge.ID), logging.Network(net.Network), logging.Error(err))
			}
		}
	}

	for i, r := range routes {
		source, target := r.SourceID(), r.DestID()
		missing := ""
		switch {
		case !g.HasNode(source):
			missing = source
		case !g.HasNode(target):
			missing = target
		}
		if missing != "" {
			report.SkippedRoutes = append(report.SkippedRoutes, SkippedRoute{Index: i, Route: r, Missing: missing})
			logger.Warn("route references missing node",
				logging.Int("route", i), logging.NodeID(missing))
			continue
		}

		edge := &storage.Edge{
			ID:     fmt.Sprintf("arch%d", i),
			Source: source,
			Target: target,
			Type:   storage.EdgeStandard,
		}
		if err := g.AddEdge(edge); err != nil {
			// Only possible if a network link already claimed the id
			report.SkippedRoutes = append(report.SkippedRoutes, SkippedRoute{Index: i, Route: r})
			logger.Warn("route skipped", logging.EdgeID(edge.ID), logging.Error(err))
		}
	}

	g.Seal()
	logger.Debug("graph built",
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()),
		logging.Int("skipped_routes", len(report.SkippedRoutes)))
	return g, report
}

// ArchitectureNetworks returns the dataset networks used by an architecture's
// layers, in dataset order. Layers naming an unknown network are logged.
func (d *Dataset) ArchitectureNetworks(archID int, logger logging.Logger) ([]Network, error) {
	arch, err := d.Architecture(archID)
	if err != nil {
		return nil, err
	}
	logger = logging.OrDefault(logger)

	for _, l := range arch.Layers {
		if _, err := d.Network(l.Network); err != nil {
			logger.Warn("architecture layer references missing network",
				logging.Architecture(archID), logging.Network(l.Network))
		}
	}

	var networks []Network
	for _, n := range d.Networks {
		if arch.HasNetwork(n.Network) {
			networks = append(networks, n)
		}
	}
	return networks, nil
}

// BuildArchitectureGraph builds the graph of one architecture.
func (d *Dataset) BuildArchitectureGraph(archID int, logger logging.Logger) (*storage.Graph, BuildReport, error) {
	networks, err := d.ArchitectureNetworks(archID, logger)
	if err != nil {
		return nil, BuildReport{}, err
	}
	arch, _ := d.Architecture(archID)

	g, report := BuildGraph(networks, arch.Routes, logging.OrDefault(logger).With(logging.Architecture(archID)))
	return g, report, nil
}
