package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding

	// Actions
	Filter          key.Binding
	Search          key.Binding
	ToggleWindow    key.Binding
	ToggleFavourite key.Binding
	Rate            key.Binding
	RateUp          key.Binding
	RateDown        key.Binding
	ClearAll        key.Binding
	OpenPoster      key.Binding
	Refresh         key.Binding
	Help            key.Binding
	Quit            key.Binding
	Escape          key.Binding
	Enter           key.Binding

	// Confirmations
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "pgdown"),
			key.WithHelp("n/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left", "pgup"),
			key.WithHelp("p/←", "prev page"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter page"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "search"),
		),
		ToggleWindow: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "day/week"),
		),
		ToggleFavourite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favourite"),
		),
		Rate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-9", "rate (0 clears)"),
		),
		RateUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "rating up"),
		),
		RateDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "rating down"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear all"),
		),
		OpenPoster: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open poster"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.ToggleFavourite, k.Rate, k.Search, k.Filter, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped into columns
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.NextTab, k.PrevTab},
		{k.ToggleFavourite, k.Rate, k.RateUp, k.RateDown, k.ClearAll, k.OpenPoster},
		{k.Search, k.Filter, k.ToggleWindow, k.Refresh, k.Help, k.Quit},
	}
}
