package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-archflow/pkg/algorithms"
	"github.com/dd0wney/cluso-archflow/pkg/explorer"
	"github.com/dd0wney/cluso-archflow/pkg/search"
	"github.com/dd0wney/cluso-archflow/pkg/visualization"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(visualization.ColorInput)).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	optionsView view = iota
	chainView
	treeView
	flowView
)

var viewNames = []string{"Start nodes", "Chain", "Tree", "Flow"}

// optionItem is a start node candidate in the options list.
type optionItem struct {
	id       string
	detail   string
	selected bool
}

func (i optionItem) Title() string {
	if i.selected {
		return "[x] " + i.id
	}
	return "[ ] " + i.id
}

func (i optionItem) Description() string { return i.detail }
func (i optionItem) FilterValue() string { return i.id }

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	session *explorer.Session
	archIDs []int
	archIdx int

	currentView view
	options     list.Model
	filter      textinput.Model
	selected    map[string]bool

	cursor int
	tree   []algorithms.HierarchyEntry
	hover  explorer.HoverResult

	run       *explorer.FlowRun
	frames    []visualization.Frame
	frame     int
	animating bool

	help       help.Model
	keys       keyMap
	width      int
	height     int
	message    string
	messageErr bool
}

func initialModel(s *explorer.Session) model {
	ti := textinput.New()
	ti.Placeholder = "filter by name"
	ti.CharLimit = 64
	ti.Width = 40

	l := list.New(nil, list.NewDefaultDelegate(), 60, 20)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	m := model{
		session:  s,
		options:  l,
		filter:   ti,
		selected: make(map[string]bool),
		help:     help.New(),
		keys:     keys,
	}
	for _, arch := range s.Dataset().Architectures {
		m.archIDs = append(m.archIDs, arch.ID)
	}
	if active, err := s.Architecture(); err == nil {
		for i, id := range m.archIDs {
			if id == active.ID {
				m.archIdx = i
			}
		}
	}
	m.refreshOptions()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.options.SetSize(msg.Width-4, max(msg.Height-12, 5))
		return m, nil

	case tickMsg:
		if !m.animating {
			return m, nil
		}
		if m.frame+1 >= len(m.frames) {
			m.animating = false
			return m, nil
		}
		m.frame++
		return m, tickCmd(m.session.Step())

	case tea.KeyMsg:
		if m.filter.Focused() {
			return m.updateFilter(msg)
		}
		return m.updateKey(msg)
	}
	return m, nil
}

func (m model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Enter):
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refreshOptions()
	return m, cmd
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Tab):
		m.switchView((m.currentView + 1) % view(len(viewNames)))

	case key.Matches(msg, m.keys.ShiftTab):
		m.switchView((m.currentView + view(len(viewNames)) - 1) % view(len(viewNames)))

	case key.Matches(msg, m.keys.Direction):
		next := algorithms.DirectionOutput
		if m.session.Direction() == algorithms.DirectionOutput {
			next = algorithms.DirectionInput
		}
		m.report(m.session.SetDirection(next), "direction: "+next.String())
		m.resetSelection()

	case key.Matches(msg, m.keys.Architecture):
		if len(m.archIDs) == 0 {
			break
		}
		m.archIdx = (m.archIdx + 1) % len(m.archIDs)
		id := m.archIDs[m.archIdx]
		m.report(m.session.SelectArchitecture(id), fmt.Sprintf("architecture %d selected", id))
		m.resetSelection()

	case key.Matches(msg, m.keys.Run):
		return m.runFlow()

	case key.Matches(msg, m.keys.Up):
		m.move(-1)

	case key.Matches(msg, m.keys.Down):
		m.move(1)

	case key.Matches(msg, m.keys.Filter):
		if m.currentView == optionsView {
			cmd := m.filter.Focus()
			return m, cmd
		}

	case key.Matches(msg, m.keys.Toggle):
		m.toggle()

	case key.Matches(msg, m.keys.Enter):
		if m.currentView == optionsView {
			m.traceChain()
		} else if m.currentView == treeView {
			m.toggle()
		}
	}
	return m, nil
}

func (m *model) report(err error, success string) {
	if err != nil {
		m.message = err.Error()
		m.messageErr = true
		return
	}
	m.message = success
	m.messageErr = false
}

func (m *model) switchView(v view) {
	m.currentView = v
	m.cursor = 0
	if v == chainView {
		m.updateHover()
	}
}

func (m *model) resetSelection() {
	m.selected = make(map[string]bool)
	m.tree = nil
	m.run = nil
	m.frames = nil
	m.animating = false
	m.hover = explorer.HoverResult{}
	m.cursor = 0
	m.refreshOptions()
}

// refreshOptions rebuilds the options list from the session and the filter.
func (m *model) refreshOptions() {
	opts, err := m.session.SearchOptions()
	if err != nil {
		m.report(err, "")
		return
	}
	if q := m.filter.Value(); q != "" {
		opts = search.Match(opts, q)
	}

	items := make([]list.Item, 0, len(opts))
	for _, id := range opts {
		detail := ""
		if n, err := m.session.Node(id); err == nil {
			detail = fmt.Sprintf("%s · %s · %s", n.Network, n.Class, n.Type)
		}
		items = append(items, optionItem{id: id, detail: detail, selected: m.selected[id]})
	}
	m.options.SetItems(items)

	arch, err := m.session.Architecture()
	if err == nil {
		m.options.Title = fmt.Sprintf("%s · %s", arch.Name, m.session.Direction())
	}
}

func (m *model) move(delta int) {
	switch m.currentView {
	case optionsView:
		if delta < 0 {
			m.options.CursorUp()
		} else {
			m.options.CursorDown()
		}
	case chainView:
		m.cursor = clamp(m.cursor+delta, len(m.session.Chain().Nodes))
		m.updateHover()
	case treeView:
		m.cursor = clamp(m.cursor+delta, len(m.visibleTree()))
	}
}

func clamp(v, n int) int {
	if n == 0 || v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (m *model) toggle() {
	switch m.currentView {
	case optionsView:
		item, ok := m.options.SelectedItem().(optionItem)
		if !ok {
			return
		}
		item.selected = !item.selected
		m.selected[item.id] = item.selected
		m.options.SetItem(m.options.Index(), item)
	case treeView:
		rows := m.visibleTree()
		if m.cursor < len(rows) {
			rows[m.cursor].entry.Toggle()
		}
	}
}

// traceChain computes the chain of the selected start nodes, in the order
// they appear among the search options.
func (m *model) traceChain() {
	opts, err := m.session.SearchOptions()
	if err != nil {
		m.report(err, "")
		return
	}
	var starts []string
	for _, id := range opts {
		if m.selected[id] {
			starts = append(starts, id)
		}
	}
	if len(starts) == 0 {
		if item, ok := m.options.SelectedItem().(optionItem); ok {
			starts = []string{item.id}
		}
	}
	if len(starts) == 0 {
		m.report(errors.New("select at least one start node"), "")
		return
	}

	chain, err := m.session.SetSearchNodes(starts)
	if err != nil {
		m.report(err, "")
		return
	}
	m.tree, err = m.session.Hierarchy()
	if err != nil {
		m.report(err, "")
		return
	}
	algorithms.CollapseBelowRoot(m.tree)
	m.run = nil
	m.frames = nil
	m.report(nil, fmt.Sprintf("chain of %d nodes and %d links", len(chain.Nodes), len(chain.Links)))
	m.switchView(chainView)
}

func (m model) runFlow() (tea.Model, tea.Cmd) {
	if m.session.Chain().Empty() {
		m.report(errors.New("trace a chain before running the flow"), "")
		return m, nil
	}
	run, err := m.session.RunFlow()
	if err != nil {
		m.report(err, "")
		return m, nil
	}
	m.run = &run
	m.frames = run.Timeline.Frames()
	m.frame = 0
	m.animating = len(m.frames) > 1
	m.report(nil, fmt.Sprintf("flow %s: %d failed", run.ID[:8], len(run.Result.Failed())))
	m.switchView(flowView)
	if m.animating {
		return m, tickCmd(m.session.Step())
	}
	return m, nil
}

func (m *model) updateHover() {
	ids := m.session.Chain().NodeIDs()
	if m.cursor >= len(ids) {
		m.hover = explorer.HoverResult{}
		return
	}
	res, err := m.session.Hover(ids[m.cursor])
	if err != nil {
		m.report(err, "")
		return
	}
	m.hover = res
}

type treeRow struct {
	entry *algorithms.HierarchyEntry
	level int
}

func (m model) visibleTree() []treeRow {
	var rows []treeRow
	algorithms.WalkHierarchy(m.tree, func(e *algorithms.HierarchyEntry, level int) {
		rows = append(rows, treeRow{entry: e, level: level})
	})
	return rows
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("archflow explorer"))
	s.WriteString("\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n")

	switch m.currentView {
	case optionsView:
		s.WriteString(m.renderOptions())
	case chainView:
		s.WriteString(m.renderChain())
	case treeView:
		s.WriteString(m.renderTree())
	case flowView:
		s.WriteString(m.renderFlow())
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m model) renderTabs() string {
	var tabs []string
	for i, name := range viewNames {
		if view(i) == m.currentView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m model) renderOptions() string {
	var s strings.Builder
	if m.filter.Focused() || m.filter.Value() != "" {
		s.WriteString(m.filter.View())
		s.WriteString("\n\n")
	}
	s.WriteString(m.options.View())
	return contentStyle.Render(s.String())
}

func (m model) renderChain() string {
	chain := m.session.Chain()
	if chain.Empty() {
		return contentStyle.Render(dimStyle.Render("No chain yet. Select start nodes and press enter."))
	}

	ancestors := make(map[string]bool, len(m.hover.Ancestors))
	for _, id := range m.hover.Ancestors {
		ancestors[id] = true
	}

	// Failed gates of the last run stay marked after leaving the flow view.
	last, lastErr := m.session.LastFlow()
	ran := lastErr == nil

	var s strings.Builder
	ids := chain.NodeIDs()
	for i, id := range ids {
		n, _ := chain.Node(id)
		line := fmt.Sprintf("%s%s", strings.Repeat("  ", n.Depth), id)
		failed := ran && last.Result.IsFailed(id)
		if failed {
			line += " [failed]"
		}
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case ancestors[id]:
			line = headerStyle.Render(line)
		case failed:
			line = colored(visualization.FlowColor(n, last.Result), line)
		default:
			line = colored(visualization.ClassColor(n.Class), line)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	if len(m.hover.Extended) > 0 {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render("upstream outside the chain: " + strings.Join(m.hover.Extended, ", ")))
		s.WriteString("\n")
	}
	return contentStyle.Render(s.String())
}

func (m model) renderTree() string {
	rows := m.visibleTree()
	if len(rows) == 0 {
		return contentStyle.Render(dimStyle.Render("No hierarchy yet."))
	}

	var s strings.Builder
	for i, r := range rows {
		marker := "  "
		switch {
		case len(r.entry.CollapsedChildren) > 0:
			marker = "▸ "
		case len(r.entry.Children) > 0:
			marker = "▾ "
		}
		line := strings.Repeat("  ", r.level) + marker + r.entry.Name
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}
	return contentStyle.Render(s.String())
}

func (m model) renderFlow() string {
	if m.run == nil {
		return contentStyle.Render(dimStyle.Render("Press r to run the flow over the current chain."))
	}

	revealed := make(map[string]bool)
	if m.frame < len(m.frames) {
		for _, id := range m.frames[m.frame].Nodes {
			revealed[id] = true
		}
	}

	var s strings.Builder
	for _, layer := range visualization.Layers(m.session.Chain()) {
		cells := make([]string, 0, len(layer))
		for _, id := range layer {
			n, _ := m.session.Chain().Node(id)
			color := visualization.ColorInactive
			if revealed[id] {
				color = visualization.FlowColor(n, m.run.Result)
			}
			cells = append(cells, boxStyle.BorderForeground(lipgloss.Color(color)).Render(colored(color, id)))
		}
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		s.WriteString("\n")
	}

	if !m.animating && len(m.run.Result.Excluded) > 0 {
		excluded := append([]string{}, m.run.Result.Excluded...)
		sort.Strings(excluded)
		s.WriteString(dimStyle.Render("excluded: " + strings.Join(excluded, ", ")))
		s.WriteString("\n")
	}
	return contentStyle.Render(s.String())
}

func newExploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Open the interactive explorer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(initialModel(a.session), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("explorer failed: %w", err)
			}
			return nil
		},
	}
}
