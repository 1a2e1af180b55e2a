package explorer

import "errors"

var (
	// ErrNoArchitecture is returned by queries made before an architecture is selected
	ErrNoArchitecture = errors.New("no architecture selected")

	// ErrUnknownNode is returned when a node id is not in the active graph
	ErrUnknownNode = errors.New("node not in active architecture")

	// ErrUnknownLink is returned when a link id is not in the active graph
	ErrUnknownLink = errors.New("link not in active architecture")

	// ErrNoFlowRun is returned when no propagation has been run for the current chain
	ErrNoFlowRun = errors.New("no flow run for current chain")

	// ErrFlowNeedsInput is returned when a flow run is asked for in the output
	// direction, where chain links point upstream and gates cannot be evaluated
	ErrFlowNeedsInput = errors.New("flow simulation needs the input direction")
)
