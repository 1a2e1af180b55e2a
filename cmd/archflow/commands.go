package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
	"github.com/dd0wney/cluso-archflow/pkg/explorer"
	"github.com/dd0wney/cluso-archflow/pkg/search"
	"github.com/dd0wney/cluso-archflow/pkg/storage"
	"github.com/dd0wney/cluso-archflow/pkg/visualization"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkOutput(format string) error {
	if format != outputText && format != outputJSON {
		return fmt.Errorf("output must be %s or %s, got %q", outputText, outputJSON, format)
	}
	return nil
}

func newArchsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "archs",
		Short: "List architectures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			active, err := a.session.Architecture()
			if err != nil {
				return err
			}

			fmt.Fprintln(out, titleStyle.Render("ARCHITECTURES"))
			for _, arch := range a.dataset.Architectures {
				marker := " "
				if arch.ID == active.ID {
					marker = successStyle.Render("*")
				}
				networks := make([]string, 0, len(arch.Layers))
				for _, l := range arch.Layers {
					networks = append(networks, l.Network)
				}
				fmt.Fprintf(out, "%s %-3d %-24s %s\n", marker, arch.ID, arch.Name,
					dimStyle.Render(fmt.Sprintf("layers: %s  routes: %d", strings.Join(networks, ", "), len(arch.Routes))))
			}

			if report := a.session.Report(); !report.Clean() {
				fmt.Fprintln(out)
				fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("%d routes skipped, %d links skipped, %d duplicate nodes",
					len(report.SkippedRoutes), len(report.SkippedLinks), len(report.DuplicateNodes))))
			}
			return nil
		},
	}
}

func newOptionsCmd(a *app) *cobra.Command {
	var group bool
	var query string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List start node candidates for the direction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			opts, err := a.session.SearchOptions()
			if err != nil {
				return err
			}
			if query != "" {
				opts = search.Match(opts, query)
			}

			if !group {
				for _, id := range opts {
					fmt.Fprintln(out, id)
				}
				return nil
			}

			for _, g := range search.GroupByTokens(opts) {
				fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s (%d)", g.Token, len(g.Members))))
				for _, id := range g.Members {
					fmt.Fprintf(out, "  %s\n", id)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&group, "group", "g", false, "group candidates by name token")
	cmd.Flags().StringVarP(&query, "query", "q", "", "keep candidates whose name contains the query")
	return cmd
}

func newFindCmd(a *app) *cobra.Command {
	var mode string
	var field string
	var output string

	cmd := &cobra.Command{
		Use:   "find QUERY",
		Short: "Search node names and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			m, err := search.ParseMode(mode)
			if err != nil {
				return err
			}
			f, err := search.ParseField(field)
			if err != nil {
				return err
			}
			results, err := a.session.Find(m, f, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == outputJSON {
				return writeJSON(out, results)
			}
			if len(results) == 0 {
				fmt.Fprintln(out, dimStyle.Render("no matches"))
				return nil
			}
			for _, r := range results {
				fmt.Fprintf(out, "%-28s %s\n", r.NodeID, dimStyle.Render(fmt.Sprintf("%.2f", r.Score)))
				if r.Node.Desc != "" {
					fmt.Fprintf(out, "  %s\n", strings.ReplaceAll(r.Node.Desc, `\n`, " / "))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", string(search.ModeWords), "match mode: words, phrase, boolean or fuzzy")
	cmd.Flags().StringVarP(&field, "field", "f", "", "search only node names (name) or descriptions (desc); words mode only")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text or json")
	return cmd
}

func newChainCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "chain START...",
		Short: "Trace the chain reachable from start nodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			chain, err := a.chainFor(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == outputJSON {
				return writeJSON(out, chain)
			}
			printChain(out, chain)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text or json")
	return cmd
}

func printChain(out io.Writer, chain algorithms.Chain) {
	if chain.Empty() {
		fmt.Fprintln(out, dimStyle.Render("empty chain"))
		return
	}

	for depth, layer := range visualization.Layers(chain) {
		fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("depth %d", depth)))
		for _, id := range layer {
			n, _ := chain.Node(id)
			fmt.Fprintf(out, "  %s  %s\n",
				colored(visualization.ClassColor(n.Class), id),
				dimStyle.Render(fmt.Sprintf("%s %s", n.Class, n.Type)))
		}
	}

	fmt.Fprintln(out, headerStyle.Render("links"))
	for _, l := range chain.Links {
		fmt.Fprintf(out, "  %s %s %s  %s\n", l.Source, linkArrow(l.Type), l.Target, dimStyle.Render(l.ID))
	}
}

// linkArrow draws "->" for standard links and "-x" for suppress links.
func linkArrow(t storage.EdgeType) string {
	arrow := "->"
	if t == storage.EdgeSuppress {
		arrow = "-x"
	}
	return colored(visualization.LinkMarkerColor(t), arrow)
}

func newTreeCmd(a *app) *cobra.Command {
	var collapsed, box bool

	cmd := &cobra.Command{
		Use:   "tree START...",
		Short: "Print the hierarchy of start nodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.chainFor(args); err != nil {
				return err
			}
			roots, err := a.session.Hierarchy()
			if err != nil {
				return err
			}
			if collapsed {
				algorithms.CollapseBelowRoot(roots)
			}

			out := cmd.OutOrStdout()
			if !box {
				return visualization.RenderTree(out, roots)
			}
			for _, r := range roots {
				fmt.Fprintln(out, visualization.DrawTree(r))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "hide entries below the first level")
	cmd.Flags().BoolVar(&box, "box", false, "draw each root as a box tree")
	return cmd
}

func newAncestorsCmd(a *app) *cobra.Command {
	var starts []string
	var afterFlow bool

	cmd := &cobra.Command{
		Use:   "ancestors NODE",
		Short: "Show the upstream nodes highlighted when hovering a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(starts) == 0 {
				starts = []string{args[0]}
			}
			if _, err := a.chainFor(starts); err != nil {
				return err
			}
			if afterFlow {
				if _, err := a.session.RunFlow(); err != nil {
					return err
				}
			}

			res, err := a.session.Hover(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerStyle.Render("chain ancestors"))
			for _, id := range res.Ancestors {
				fmt.Fprintf(out, "  %s\n", id)
			}
			if len(res.Extended) > 0 {
				fmt.Fprintln(out, headerStyle.Render("outside the chain"))
				for _, id := range res.Extended {
					fmt.Fprintf(out, "  %s\n", errorStyle.Render(id))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&starts, "start", "s", nil, "start nodes of the chain (default: the node itself)")
	cmd.Flags().BoolVar(&afterFlow, "after-flow", false, "run the flow simulation first so failed nodes reveal outside ancestors")
	return cmd
}

func newFlowCmd(a *app) *cobra.Command {
	var output string
	var frames bool

	cmd := &cobra.Command{
		Use:   "flow START...",
		Short: "Simulate signal propagation from start nodes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			chain, err := a.chainFor(args)
			if err != nil {
				return err
			}
			run, err := a.session.RunFlow()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == outputJSON {
				return writeJSON(out, run)
			}

			fmt.Fprintln(out, titleStyle.Render("FLOW "+run.ID))
			for _, n := range chain.Nodes {
				status := "inactive"
				switch {
				case run.Result.IsFailed(n.ID):
					status = "failed"
				case run.Result.Passed(n.ID):
					status = "active"
				}
				fmt.Fprintf(out, "  %-8s %s  %s\n", status,
					colored(visualization.FlowColor(n, run.Result), n.ID),
					dimStyle.Render(fmt.Sprintf("depth %d", n.Depth)))
			}
			if len(run.Result.Excluded) > 0 {
				fmt.Fprintln(out, headerStyle.Render("excluded"))
				for _, id := range run.Result.Excluded {
					fmt.Fprintf(out, "  %s\n", id)
				}
			}

			if frames {
				printTimeline(out, run.Timeline)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text or json")
	cmd.Flags().BoolVar(&frames, "frames", false, "print the animation timeline")
	return cmd
}

func printTimeline(out io.Writer, tl visualization.Timeline) {
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("timeline (step %s, total %s)", tl.Step, tl.Duration())))
	for _, f := range tl.Nodes {
		fmt.Fprintf(out, "  node %-8s +%-7s %s\n", f.Delay, f.Duration, colored(f.Color, f.NodeID))
	}
	for _, f := range tl.Links {
		dash := "solid"
		if f.Dash != "" {
			dash = "dash " + f.Dash
		}
		fmt.Fprintf(out, "  link %-8s +%-7s %s -> %s  %s\n", f.Delay, f.Duration, f.Source, f.Target,
			colored(f.MarkerColor, dash))
	}
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe NODE|LINK",
		Short: "Show a node's or a link's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			n, err := a.session.Node(args[0])
			if errors.Is(err, explorer.ErrUnknownNode) {
				link, lerr := a.session.Link(args[0])
				if lerr != nil {
					return err
				}
				fmt.Fprintf(out, "%s  %s %s %s  %s\n", link.ID, link.Source, linkArrow(link.Type), link.Target,
					dimStyle.Render(string(link.Type)))
				return nil
			}
			if err != nil {
				return err
			}
			g := a.session.Graph()
			fmt.Fprintln(out, boxStyle.Render(visualization.Describe(n)))
			fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("links: %d in, %d out", g.InDegree(n.ID), g.OutDegree(n.ID))))
			return nil
		},
	}
}

func newLayoutCmd(a *app) *cobra.Command {
	var width, height float64

	cmd := &cobra.Command{
		Use:   "layout START...",
		Short: "Print depth-layered positions of the chain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := a.chainFor(args)
			if err != nil {
				return err
			}
			layout := visualization.NewDepthLayout(&visualization.LayoutConfig{Width: width, Height: height}, a.session.Direction())
			positions := layout.ComputeLayout(chain)

			out := cmd.OutOrStdout()
			for _, id := range chain.NodeIDs() {
				p := positions[id]
				fmt.Fprintf(out, "%-24s %8.1f %8.1f\n", id, p.X, p.Y)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 800, "canvas width")
	cmd.Flags().Float64Var(&height, "height", 600, "canvas height")
	return cmd
}

func newMetricsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print Prometheus metrics for loading the active architecture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.metrics.WriteText(cmd.OutOrStdout())
		},
	}
}
