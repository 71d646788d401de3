package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/placepicker/internal/api"
	"github.com/mobil-koeln/placepicker/internal/autocomplete"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.picker.SetWidth(m.leftWidth())
		return m, nil

	case autocomplete.SelectedMsg:
		if msg.ID != m.picker.ID() {
			return m, nil
		}
		return m.handleSelected(msg)

	case autocomplete.FailedMsg:
		if msg.ID != m.picker.ID() {
			return m, nil
		}
		return m, m.setStatus(statusError, failureText(msg.Err))

	case autocomplete.NotFoundMsg:
		if msg.ID != m.picker.ID() {
			return m, nil
		}
		return m, m.setStatus(statusWarn, fmt.Sprintf("No details for %q (%s)", msg.Err.PlaceID, msg.Err.Status))

	case autocomplete.TimeoutMsg:
		if msg.ID != m.picker.ID() {
			return m, nil
		}
		return m, m.setStatus(statusWarn, "Request timed out")

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else belongs to the picker: its results, ticks and blinks
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) handleSelected(msg autocomplete.SelectedMsg) (tea.Model, tea.Cmd) {
	s := selection{Data: msg.Data, Detail: msg.Detail}
	m.selected = &s
	m.remember(s)

	if m.opts.QuitOnSelect {
		m.picker.Close()
		return m, tea.Quit
	}
	return m, m.setStatus(statusInfo, "Selected "+msg.Data.Description)
}

// failureText turns a request error into a status line
func failureText(err error) string {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return "API error: " + apiErr.Message
	case errors.Is(err, api.ErrUnexpectedResponse):
		return "Unexpected response from the places API"
	default:
		return "Error: " + err.Error()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.picker.Close()
		return m, tea.Quit
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKeys(msg)
	case focusHistory:
		return m.handleHistoryKeys(msg)
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Tab) {
		if len(m.history) == 0 {
			return m, nil
		}
		m.focus = focusHistory
		m.picker.Blur()
		return m, nil
	}

	// A selection blurs the picker; typing again takes the focus back
	var focusCmd tea.Cmd
	if !m.picker.IsFocused() {
		focusCmd = m.picker.Focus()
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, tea.Batch(focusCmd, cmd)
}

func (m Model) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.historyCursor > 0 {
			m.historyCursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.historyCursor < len(m.history)-1 {
			m.historyCursor++
		}

	case key.Matches(msg, m.keys.Show):
		if m.historyCursor < len(m.history) {
			s := m.history[m.historyCursor]
			m.selected = &s
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Tab):
		m.focus = focusSearch
		return m, m.picker.Focus()
	}

	return m, nil
}
