package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/mobil-koeln/placepicker/internal/autocomplete"
)

// keyMap adds the app bindings to the picker's bindings
type keyMap struct {
	picker autocomplete.KeyMap

	Tab  key.Binding
	Up   key.Binding
	Down key.Binding
	Show key.Binding
	Back key.Binding
	Help key.Binding
	Quit key.Binding
}

func newKeyMap(picker autocomplete.KeyMap) keyMap {
	return keyMap{
		picker: picker,
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Show: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "/"),
			key.WithHelp("esc", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// searchHelp and historyHelp are the context-aware hint sets

type searchHelp keyMap

func (k searchHelp) ShortHelp() []key.Binding {
	return append(k.picker.ShortHelp(), k.Tab, k.Quit)
}

func (k searchHelp) FullHelp() [][]key.Binding {
	return append(k.picker.FullHelp(), []key.Binding{k.Tab, k.Quit})
}

type historyHelp keyMap

func (k historyHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Show, k.Back, k.Help, k.Quit}
}

func (k historyHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Show},
		{k.Back, k.Tab, k.Help, k.Quit},
	}
}
