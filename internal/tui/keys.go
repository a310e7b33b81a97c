package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Open     key.Binding
	Back     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Filters
	Search       key.Binding
	LocalFilter  key.Binding
	Availability key.Binding
	Sort         key.Binding
	Strategy     key.Binding
	MinPrice     key.Binding
	ClearFilters key.Binding

	// Actions
	Like      key.Binding
	OpenImage key.Binding
	OpenWeb   key.Binding
	Contact   key.Binding
	Retry     key.Binding
	Quit      key.Binding
	Help      key.Binding
	Escape    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", "right"),
			key.WithHelp("enter", "open painting"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "h", "left", "backspace"),
			key.WithHelp("esc/h", "back to list"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next page"),
		),

		Search: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "search catalog"),
		),
		LocalFilter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter loaded"),
		),
		Availability: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "availability"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Strategy: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "curated selection"),
		),
		MinPrice: key.NewBinding(
			key.WithKeys("$"),
			key.WithHelp("$", "minimum price"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),

		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like/unlike"),
		),
		OpenImage: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open image"),
		),
		OpenWeb: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "open in browser"),
		),
		Contact: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "contact gallery"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry/refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
