package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 5 * time.Second

// clearStatusAfter returns a tea.Cmd that expires the status line.
func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}

// setStatus shows msg in the status bar until it expires
func (m *Model) setStatus(kind statusKind, msg string) tea.Cmd {
	m.statusSeq++
	m.status = msg
	m.statusKind = kind
	return clearStatusAfter(m.statusSeq)
}
