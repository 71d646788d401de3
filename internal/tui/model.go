// Package tui is the interactive place picker: the autocomplete component
// on the left, the resolved place and recent picks on the right.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/placepicker/internal/autocomplete"
	"github.com/mobil-koeln/placepicker/internal/models"
)

type focusPanel int

const (
	focusSearch focusPanel = iota
	focusHistory
)

const maxHistory = 20

// selection is one resolved pick
type selection struct {
	Data   models.PlaceData
	Detail *models.PlaceDetail
}

func (s selection) key() string {
	return s.Data.PlaceID + "\x00" + s.Data.Description
}

// Options configures the root model
type Options struct {
	QuitOnSelect bool   // exit after the first resolved selection
	Subtitle     string // shown next to the title, e.g. the API flavor
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	picker autocomplete.Model
	keys   keyMap
	help   help.Model
	opts   Options

	width  int
	height int
	focus  focusPanel

	selected      *selection
	history       []selection
	historyCursor int

	status     string
	statusKind statusKind
	statusSeq  int
}

// New creates a new TUI model around an autocomplete component.
func New(cfg autocomplete.Config, client autocomplete.Client, opts Options) Model {
	if cfg.KeyMap == nil {
		km := autocomplete.DefaultKeyMap()
		cfg.KeyMap = &km
	}

	picker := autocomplete.New(cfg, client)
	picker.Focus()

	return Model{
		picker: picker,
		keys:   newKeyMap(*cfg.KeyMap),
		help:   help.New(),
		opts:   opts,
		focus:  focusSearch,
	}
}

// Init returns the initial command (textinput blink).
func (m Model) Init() tea.Cmd {
	return m.picker.Init()
}

// Selection returns the most recent resolved pick.
func (m Model) Selection() (models.PlaceData, *models.PlaceDetail, bool) {
	if m.selected == nil {
		return models.PlaceData{}, nil, false
	}
	return m.selected.Data, m.selected.Detail, true
}

// Close aborts the picker's in-flight requests.
func (m *Model) Close() {
	m.picker.Close()
}

// remember puts s at the front of the history, dropping an older copy
func (m *Model) remember(s selection) {
	history := make([]selection, 0, len(m.history)+1)
	history = append(history, s)
	for _, h := range m.history {
		if h.key() != s.key() {
			history = append(history, h)
		}
	}
	if len(history) > maxHistory {
		history = history[:maxHistory]
	}
	m.history = history
	m.historyCursor = 0
}
