package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Back       key.Binding

	// Navbar
	NavApps     key.Binding
	NavDeploys  key.Binding
	NavSettings key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// List actions
	Open        key.Binding
	Search      key.Binding
	NewApp      key.Binding
	Deploy      key.Binding
	TogglePause key.Binding
	Delete      key.Binding
	OpenDomain  key.Binding
	ViewLogs    key.Binding
	CycleFilter key.Binding

	// Detail
	NextTab  key.Binding
	PrevTab  key.Binding
	Rollback key.Binding
	CopyLogs key.Binding
	LiveTail key.Binding

	// Forms
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	PrevOpt   key.Binding
	NextOpt   key.Binding
	Toggle    key.Binding
	AddEnv    key.Binding
	RemoveEnv key.Binding
	StartRun  key.Binding
	GitHub    key.Binding

	// Modals
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		NavApps: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Apps"),
		),
		NavDeploys: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Deploys"),
		),
		NavSettings: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Settings"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		NewApp: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New app"),
		),
		Deploy: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Deploy"),
		),
		TogglePause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Pause/resume"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete"),
		),
		OpenDomain: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open domain"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "View logs"),
		),
		CycleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle filter"),
		),

		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous tab"),
		),
		Rollback: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rollback"),
		),
		CopyLogs: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy visible logs"),
		),
		LiveTail: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Toggle live tail"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "Next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Submit"),
		),
		PrevOpt: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "Previous option"),
		),
		NextOpt: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "Next option"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Toggle"),
		),
		AddEnv: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "Add variable"),
		),
		RemoveEnv: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Remove variable"),
		),
		StartRun: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Deploy"),
		),
		GitHub: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "Continue with GitHub"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NavApps, k.NavDeploys, k.NavSettings, k.Back},
		{k.Up, k.Down, k.Top, k.Bottom, k.Open},
		{k.Search, k.NewApp, k.Deploy, k.TogglePause, k.Delete, k.OpenDomain, k.ViewLogs, k.CycleFilter},
		{k.NextTab, k.PrevTab, k.Rollback, k.CopyLogs, k.LiveTail},
		{k.NextField, k.PrevField, k.PrevOpt, k.NextOpt, k.Toggle, k.AddEnv, k.RemoveEnv, k.StartRun, k.GitHub},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
