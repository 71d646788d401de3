package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/mobil-koeln/placepicker/internal/models"
)

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Layout: header + panels + status bar
	header := m.renderHeader()
	statusBar := m.renderStatusBar()

	panelHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if panelHeight < 3 {
		panelHeight = 3
	}

	leftWidth := m.leftWidth()
	rightWidth := m.width - leftWidth - 4
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftBorder := stylePanelNormal
	if m.focus == focusSearch {
		leftBorder = stylePanelFocused
	}
	leftPanel := leftBorder.
		Width(leftWidth).
		Height(panelHeight - 2).
		Render(m.picker.View())

	rightBorder := stylePanelNormal
	if m.focus == focusHistory {
		rightBorder = stylePanelFocused
	}
	rightPanel := rightBorder.
		Width(rightWidth).
		Height(panelHeight - 2).
		Render(m.renderRightPanel(rightWidth, panelHeight-2))

	panels := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	return lipgloss.JoinVertical(lipgloss.Left, header, panels, statusBar)
}

// leftWidth is ~45% of the screen, minus the border
func (m Model) leftWidth() int {
	w := m.width*45/100 - 2
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) renderHeader() string {
	title := styleLogo.Render("placepicker")
	if m.opts.Subtitle != "" {
		title += "  " + styleMuted.Render(m.opts.Subtitle)
	}
	return " " + title
}

// renderRightPanel renders the selected place above the recent picks.
func (m Model) renderRightPanel(width, height int) string {
	detail := m.renderSelection(width)
	detailHeight := lipgloss.Height(detail)

	historyHeight := height - detailHeight - 1
	if historyHeight < 3 {
		return detail
	}
	separator := styleMuted.Render(strings.Repeat("─", width))
	return detail + "\n" + separator + "\n" + m.renderHistory(width, historyHeight)
}

// renderSelection renders the current pick.
func (m Model) renderSelection(width int) string {
	title := styleHeader.Render("SELECTED")
	if m.selected == nil {
		return title + "\n" + styleMuted.Render(" Search for a place and press Enter")
	}

	data, d := m.selected.Data, m.selected.Detail

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	name := data.Description
	if d != nil && d.Name != "" {
		name = d.Name
	}
	b.WriteString(" " + styleName.Render(truncate(name, width-2)))

	if d == nil {
		return b.String()
	}

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString("\n " + styleMuted.Render(fmt.Sprintf("%-9s", label)) + " " + value)
	}

	if d.FormattedAddress != "" && d.FormattedAddress != name {
		field("Address", truncate(d.FormattedAddress, width-12))
	}
	loc := d.Geometry.Location
	if loc != (models.Point{}) || data.PlaceID == models.CurrentLocationID {
		field("Location", styleCoord.Render(fmt.Sprintf("%.7f,%.7f", loc.Lat, loc.Lng)))
	}
	if d.PlaceID != models.CurrentLocationID {
		field("Place ID", stylePlaceID.Render(truncate(d.PlaceID, width-12)))
	}
	if len(d.Types) > 0 {
		field("Types", styleTypes.Render(truncate(strings.Join(d.Types, ", "), width-12)))
	}
	if d.PlusCode != nil {
		field("Plus", d.PlusCode.GlobalCode)
	}

	return b.String()
}

// renderHistory renders the recent picks list.
func (m Model) renderHistory(width, height int) string {
	title := styleHeader.Render("RECENT")
	if len(m.history) == 0 {
		return title + "\n" + styleMuted.Render(" Nothing picked yet")
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	maxVisible := height - 1
	if maxVisible < 1 {
		maxVisible = 1
	}
	start, end := visibleRange(m.historyCursor, len(m.history), maxVisible)

	for i := start; i < end; i++ {
		name := truncate(m.history[i].Data.Description, width-4)
		if i == m.historyCursor && m.focus == focusHistory {
			b.WriteString(styleSelected.Render(" > " + name))
		} else {
			b.WriteString("   " + name)
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderStatusBar renders the status message and context-aware key hints.
func (m Model) renderStatusBar() string {
	var keys help.KeyMap = searchHelp(m.keys)
	if m.focus == focusHistory {
		keys = historyHelp(m.keys)
	}
	hints := " " + m.help.View(keys)

	if m.status == "" {
		return hints
	}

	style := styleStatusInfo
	switch m.statusKind {
	case statusWarn:
		style = styleStatusWarn
	case statusError:
		style = styleStatusError
	}
	return " " + style.Render(truncate(m.status, m.width-2)) + "\n" + hints
}

// visibleRange calculates the start and end indices for a scrollable list.
func visibleRange(cursor, total, maxVisible int) (int, int) {
	if total <= maxVisible {
		return 0, total
	}

	start := cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

// truncate truncates a string to the given display width.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "~"
}
