package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Intake
	Edit      key.Binding
	AddRow    key.Binding
	DeleteRow key.Binding

	// Report
	Expand        key.Binding
	ToggleTrace   key.Binding
	EditNarrative key.Binding

	// Application
	Submit      key.Binding
	SaveDraft   key.Binding
	ToggleView  key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	ClearScreen key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "right"),
		),

		// Intake
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("Enter/e", "edit field"),
		),
		AddRow: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add ledger row"),
		),
		DeleteRow: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete ledger row"),
		),

		// Report
		Expand: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "expand/collapse"),
		),
		ToggleTrace: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "evidence trace"),
		),
		EditNarrative: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "edit narrative"),
		),

		// Application
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "submit for analysis"),
		),
		SaveDraft: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "save draft"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "intake/report"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
		ClearScreen: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "clear screen"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Submit, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Edit, k.AddRow, k.DeleteRow},
		{k.Expand, k.ToggleTrace, k.EditNarrative},
		{k.Submit, k.SaveDraft, k.ToggleView},
		{k.Help, k.Quit},
	}
}
