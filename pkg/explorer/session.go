// Package explorer mediates one user's exploration of an architecture: the
// selected architecture and direction, the start nodes, the chain computed
// from them, and the last flow run.
//
// A Session is owned by a single goroutine. Every query runs to completion
// synchronously and replaces the previous result wholesale.
package explorer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
	"github.com/dd0wney/cluso-archflow/pkg/architecture"
	"github.com/dd0wney/cluso-archflow/pkg/logging"
	"github.com/dd0wney/cluso-archflow/pkg/metrics"
	"github.com/dd0wney/cluso-archflow/pkg/search"
	"github.com/dd0wney/cluso-archflow/pkg/storage"
	"github.com/dd0wney/cluso-archflow/pkg/visualization"
)

// Options configures a Session. Zero values select defaults.
type Options struct {
	Logger    logging.Logger
	Metrics   *metrics.Registry
	Direction algorithms.Direction
	Step      time.Duration
}

// HoverResult is the highlight set of a hovered node.
type HoverResult struct {
	NodeID string
	// Ancestors are the node and its upstream nodes inside the chain.
	Ancestors []string
	// Extended are further upstream nodes outside the chain. Only set when
	// the node failed in the last flow run.
	Extended []string
}

// FlowRun is one propagation run over the current chain.
type FlowRun struct {
	ID       string                 `json:"run_id"`
	Result   algorithms.FlowResult  `json:"result"`
	Timeline visualization.Timeline `json:"timeline"`
}

// Session holds the explorer state.
type Session struct {
	dataset *architecture.Dataset
	cache   *GraphCache
	logger  logging.Logger
	metrics *metrics.Registry
	step    time.Duration

	archID    int
	selected  bool
	direction algorithms.Direction
	graph     *storage.Graph
	report    architecture.BuildReport
	index     *search.DescriptionIndex // built on first Find

	searchNodes []string
	chain       algorithms.Chain
	lastRun     *FlowRun
}

// NewSession creates a session over dataset with no architecture selected.
func NewSession(dataset *architecture.Dataset, opts Options) *Session {
	logger := logging.OrDefault(opts.Logger).With(logging.Component("explorer"))
	reg := opts.Metrics
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	direction := opts.Direction
	if direction == "" {
		direction = algorithms.DirectionInput
	}
	step := opts.Step
	if step <= 0 {
		step = visualization.DefaultStep
	}

	return &Session{
		dataset:     dataset,
		cache:       NewGraphCache(dataset, logger, reg),
		logger:      logger,
		metrics:     reg,
		step:        step,
		direction:   direction,
		searchNodes: []string{},
	}
}

// SelectArchitecture makes id the active architecture. The start nodes,
// chain and last flow run are cleared.
func (s *Session) SelectArchitecture(id int) error {
	if err := s.load(id, s.direction); err != nil {
		return err
	}
	s.logger.Info("architecture selected", logging.Architecture(id))
	return nil
}

// SetDirection changes the traversal direction. The start nodes, chain and
// last flow run are cleared since the valid start nodes differ per direction.
func (s *Session) SetDirection(direction algorithms.Direction) error {
	if !s.selected {
		s.direction = direction
		return nil
	}
	if err := s.load(s.archID, direction); err != nil {
		return err
	}
	s.logger.Info("direction changed", logging.Direction(direction.String()))
	return nil
}

func (s *Session) load(id int, direction algorithms.Direction) error {
	g, report, err := s.cache.Get(CacheKey{ArchitectureID: id, Direction: direction})
	if err != nil {
		return err
	}
	s.archID = id
	s.selected = true
	s.direction = direction
	if g != s.graph {
		s.index = nil
	}
	s.graph = g
	s.report = report
	s.reset()
	return nil
}

func (s *Session) reset() {
	s.searchNodes = []string{}
	s.chain = algorithms.Chain{}
	s.lastRun = nil
}

// SetSearchNodes replaces the start nodes and recomputes the chain. Ids not
// in the active graph are logged and left out of the traversal.
func (s *Session) SetSearchNodes(ids []string) (algorithms.Chain, error) {
	if !s.selected {
		return algorithms.Chain{}, ErrNoArchitecture
	}

	s.searchNodes = append([]string{}, ids...)
	for _, id := range ids {
		if !s.graph.HasNode(id) {
			s.logger.Warn("start node not in graph", logging.NodeID(id))
		}
	}

	s.chain = algorithms.GetChain(s.graph, s.searchNodes, s.direction)
	s.lastRun = nil
	s.metrics.RecordChainQuery(len(s.chain.Nodes))
	s.logger.Debug("chain computed",
		logging.Strings("start_nodes", s.searchNodes),
		logging.Direction(s.direction.String()),
		logging.Int("nodes", len(s.chain.Nodes)),
		logging.Int("links", len(s.chain.Links)),
	)
	return s.chain, nil
}

// Hierarchy returns the tree projection of the start nodes.
func (s *Session) Hierarchy() ([]algorithms.HierarchyEntry, error) {
	if !s.selected {
		return nil, ErrNoArchitecture
	}
	return algorithms.BuildHierarchy(s.searchNodes, s.graph, s.direction), nil
}

// Hover returns the highlight set of id.
func (s *Session) Hover(id string) (HoverResult, error) {
	if !s.selected {
		return HoverResult{}, ErrNoArchitecture
	}
	if !s.graph.HasNode(id) {
		return HoverResult{}, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	res := HoverResult{
		NodeID:    id,
		Ancestors: algorithms.ChainAncestors(id, s.chain),
		Extended:  []string{},
	}
	if s.lastRun != nil && s.lastRun.Result.IsFailed(id) {
		res.Extended = algorithms.AllAncestors(s.graph, id, res.Ancestors)
	}
	return res, nil
}

// RunFlow runs the propagation simulation over the current chain and
// remembers the result for Hover. Only input direction chains can be run.
func (s *Session) RunFlow() (FlowRun, error) {
	if !s.selected {
		return FlowRun{}, ErrNoArchitecture
	}
	if !s.direction.Forward() {
		return FlowRun{}, ErrFlowNeedsInput
	}

	run := FlowRun{ID: uuid.NewString()}
	logger := s.logger.With(logging.RunID(run.ID))
	timer := logging.StartTimer(logger, "flow run", logging.Count(len(s.chain.Nodes)))

	run.Result = algorithms.Propagate(s.graph, s.chain, s.searchNodes)
	run.Timeline = visualization.BuildTimeline(run.Result, s.step)
	failed := run.Result.Failed()

	for _, id := range failed {
		logger.Debug("gate failed", logging.NodeID(id))
	}
	s.metrics.RecordFlowRun(len(run.Result.Nodes), len(failed))
	timer.End(logging.Int("activated", len(run.Result.Nodes)), logging.Int("failed", len(failed)))

	s.lastRun = &run
	return run, nil
}

// LastFlow returns the last flow run of the current chain.
func (s *Session) LastFlow() (FlowRun, error) {
	if s.lastRun == nil {
		return FlowRun{}, ErrNoFlowRun
	}
	return *s.lastRun, nil
}

// SearchOptions returns the start node candidates for the active
// architecture and direction.
func (s *Session) SearchOptions() ([]string, error) {
	if !s.selected {
		return nil, ErrNoArchitecture
	}
	opts, err := s.dataset.SearchOptions(s.archID)
	if err != nil {
		return nil, err
	}
	return opts.ForDirection(s.direction.String()), nil
}

// SearchGroups returns the start node candidates grouped by name token.
func (s *Session) SearchGroups() ([]search.Group, error) {
	opts, err := s.SearchOptions()
	if err != nil {
		return nil, err
	}
	return search.GroupByTokens(opts), nil
}

// Find searches the names and descriptions of every node in the active
// architecture, not only the start node candidates. An empty field searches
// both.
func (s *Session) Find(mode search.Mode, field search.Field, query string) ([]search.SearchResult, error) {
	if !s.selected {
		return nil, ErrNoArchitecture
	}
	if s.index == nil {
		s.index = search.NewDescriptionIndex(s.graph)
		s.logger.Debug("description index built",
			logging.Architecture(s.archID), logging.Count(s.index.Len()))
	}
	return s.index.Query(mode, field, query)
}

// Architecture returns the active architecture.
func (s *Session) Architecture() (*architecture.Architecture, error) {
	if !s.selected {
		return nil, ErrNoArchitecture
	}
	return s.dataset.Architecture(s.archID)
}

// Node returns a node of the active graph.
func (s *Session) Node(id string) (*storage.Node, error) {
	if !s.selected {
		return nil, ErrNoArchitecture
	}
	n, err := s.graph.GetNode(id)
	if storage.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %w", ErrUnknownNode, err)
	}
	return n, err
}

// Link returns a link of the active graph by id, such as "GEN-0" or "arch1".
func (s *Session) Link(id string) (*storage.Edge, error) {
	if !s.selected {
		return nil, ErrNoArchitecture
	}
	e, err := s.graph.GetEdge(id)
	if storage.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %w", ErrUnknownLink, err)
	}
	return e, err
}

// Dataset returns the dataset the session explores.
func (s *Session) Dataset() *architecture.Dataset { return s.dataset }

// Graph returns the active graph, or nil before an architecture is selected.
func (s *Session) Graph() *storage.Graph { return s.graph }

// Report returns the build report of the active graph.
func (s *Session) Report() architecture.BuildReport { return s.report }

// Direction returns the traversal direction.
func (s *Session) Direction() algorithms.Direction { return s.direction }

// SearchNodes returns the current start nodes.
func (s *Session) SearchNodes() []string { return append([]string{}, s.searchNodes...) }

// Chain returns the current chain.
func (s *Session) Chain() algorithms.Chain { return s.chain }

// Step returns the animation step.
func (s *Session) Step() time.Duration { return s.step }

// Cache returns the session's graph cache.
func (s *Session) Cache() *GraphCache { return s.cache }
