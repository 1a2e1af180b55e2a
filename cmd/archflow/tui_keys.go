package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tab          key.Binding
	ShiftTab     key.Binding
	Up           key.Binding
	Down         key.Binding
	Toggle       key.Binding
	Enter        key.Binding
	Filter       key.Binding
	Escape       key.Binding
	Direction    key.Binding
	Architecture key.Binding
	Run          key.Binding
	Help         key.Binding
	Quit         key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select / fold"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "trace chain"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "stop filtering"),
	),
	Direction: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "flip direction"),
	),
	Architecture: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "next architecture"),
	),
	Run: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "run flow"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Enter, k.Run, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Up, k.Down},
		{k.Toggle, k.Enter, k.Filter, k.Escape},
		{k.Direction, k.Architecture, k.Run},
		{k.Help, k.Quit},
	}
}
