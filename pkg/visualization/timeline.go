package visualization

import (
	"sort"
	"time"

	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
	"github.com/dd0wney/cluso-archflow/pkg/storage"
)

// DefaultStep is the animation time allotted to one depth level.
const DefaultStep = 300 * time.Millisecond

// SuppressDash is the stroke dash pattern of suppress links.
const SuppressDash = "4,4"

// NodeFrame schedules the reveal of one activated node.
type NodeFrame struct {
	NodeID   string
	Depth    int
	Delay    time.Duration
	Duration time.Duration
	Fail     bool
	Color    string
}

// LinkFrame schedules the draw of one activated link.
type LinkFrame struct {
	LinkID      string
	Source      string
	Target      string
	Delay       time.Duration
	Duration    time.Duration
	Dash        string // empty for a solid line
	MarkerColor string
}

// Timeline is the animation of one propagation run, frames ordered by delay.
type Timeline struct {
	Step  time.Duration
	Nodes []NodeFrame
	Links []LinkFrame
}

// BuildTimeline schedules a flow result. A node starts at depth*step and
// lasts 0.8*step. A link starts at its source depth*step and lasts
// step-100ms. A step of zero or less uses DefaultStep.
//
// Depth zero always starts at 0 whatever the step, so the schedule scales
// linearly with step. At DefaultStep this equals (depth+1)*step-300ms.
func BuildTimeline(result algorithms.FlowResult, step time.Duration) Timeline {
	if step <= 0 {
		step = DefaultStep
	}
	tl := Timeline{Step: step, Nodes: []NodeFrame{}, Links: []LinkFrame{}}

	depths := make(map[string]int, len(result.Nodes))
	for _, n := range result.Nodes {
		depths[n.ID] = n.Depth
		color := ClassColor(n.Class)
		if n.Fail {
			color = ColorFailed
		}
		tl.Nodes = append(tl.Nodes, NodeFrame{
			NodeID:   n.ID,
			Depth:    n.Depth,
			Delay:    time.Duration(n.Depth) * step,
			Duration: step * 8 / 10,
			Fail:     n.Fail,
			Color:    color,
		})
	}

	linkDuration := step - 100*time.Millisecond
	if linkDuration < 0 {
		linkDuration = 0
	}
	for _, l := range result.Links {
		frame := LinkFrame{
			LinkID:      l.ID,
			Source:      l.Source,
			Target:      l.Target,
			Delay:       time.Duration(depths[l.Source]) * step,
			Duration:    linkDuration,
			MarkerColor: LinkMarkerColor(l.Type),
		}
		if l.Type == storage.EdgeSuppress {
			frame.Dash = SuppressDash
		}
		tl.Links = append(tl.Links, frame)
	}

	sort.SliceStable(tl.Nodes, func(i, j int) bool { return tl.Nodes[i].Delay < tl.Nodes[j].Delay })
	sort.SliceStable(tl.Links, func(i, j int) bool { return tl.Links[i].Delay < tl.Links[j].Delay })
	return tl
}

// Duration is the time until the last frame finishes.
func (t Timeline) Duration() time.Duration {
	var end time.Duration
	for _, f := range t.Nodes {
		end = max(end, f.Delay+f.Duration)
	}
	for _, f := range t.Links {
		end = max(end, f.Delay+f.Duration)
	}
	return end
}

// Frame is the state of the animation at one tick.
type Frame struct {
	At    time.Duration
	Nodes []string // nodes revealed so far
	Links []string // links started so far
}

// Frames samples the timeline once per step, from time zero until every
// frame has started.
func (t Timeline) Frames() []Frame {
	if len(t.Nodes) == 0 && len(t.Links) == 0 {
		return nil
	}
	var last time.Duration
	for _, f := range t.Nodes {
		last = max(last, f.Delay)
	}
	for _, f := range t.Links {
		last = max(last, f.Delay)
	}

	var frames []Frame
	for at := time.Duration(0); at <= last; at += t.Step {
		frame := Frame{At: at}
		for _, f := range t.Nodes {
			if f.Delay <= at {
				frame.Nodes = append(frame.Nodes, f.NodeID)
			}
		}
		for _, f := range t.Links {
			if f.Delay <= at {
				frame.Links = append(frame.Links, f.LinkID)
			}
		}
		frames = append(frames, frame)
	}
	return frames
}
