package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Pages
	NextPage key.Binding
	PrevPage key.Binding

	// Scrolling
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Facets
	NextFacet    key.Binding
	PrevFacet    key.Binding
	Left         key.Binding
	Right        key.Binding
	ToggleValue  key.Binding
	ClearFilters key.Binding
	Search       key.Binding

	// Application
	Reload     key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous page"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("PgDn", "page down"),
		),

		NextFacet: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next facet"),
		),
		PrevFacet: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous facet"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "previous value"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next value"),
		),
		ToggleValue: key.NewBinding(
			key.WithKeys(" ", "x", "enter"),
			key.WithHelp("Space/x", "toggle value"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "keyword"),
		),

		Reload: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.ToggleValue, k.Search, k.ToggleHelp, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.Up, k.Down, k.PageUp, k.PageDown},
		{k.NextFacet, k.PrevFacet, k.Left, k.Right, k.ToggleValue},
		{k.ClearFilters, k.Search, k.Reload, k.ToggleHelp, k.Quit},
	}
}
