package autocomplete

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the input, the optional header and the suggestion list.
func (m Model) View() string {
	s := m.cfg.Styles

	inputStyle := s.Input
	if m.input.Focused() {
		inputStyle = s.InputFocused
	}
	if m.width > 2 {
		inputStyle = inputStyle.Width(m.width - 2)
	}

	parts := []string{}
	if m.cfg.RenderLeftButton != nil {
		parts = append(parts, m.cfg.RenderLeftButton(), " ")
	}
	parts = append(parts, m.input.View())
	if m.Loading() {
		parts = append(parts, " ", m.spinner.View())
	}
	if m.cfg.RenderRightButton != nil {
		parts = append(parts, " ", m.cfg.RenderRightButton())
	}
	input := inputStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, parts...))

	var b strings.Builder
	if m.cfg.RenderHeader != nil {
		b.WriteString(m.cfg.RenderHeader())
		b.WriteString("\n")
	}
	b.WriteString(input)

	if m.ListVisible() {
		if list := m.renderList(); list != "" {
			b.WriteString("\n")
			b.WriteString(list)
		}
	}

	return s.Container.Render(b.String())
}

func (m Model) renderList() string {
	rows := m.Rows()
	if len(rows) == 0 {
		return ""
	}

	lines := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		selected := i == m.cursor
		if m.cfg.RenderRow != nil {
			lines = append(lines, m.cfg.RenderRow(row, selected))
			continue
		}
		lines = append(lines, m.renderRow(row, selected))
	}

	if m.cfg.PoweredBy != "" {
		lines = append(lines, m.cfg.Styles.PoweredBy.Render("  "+m.cfg.PoweredBy))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders a row as main text plus muted secondary text, falling
// back to the rendered description when no structured text is present.
func (m Model) renderRow(row Row, selected bool) string {
	s := m.cfg.Styles

	main := row.StructuredFormatting.MainText
	secondary := row.StructuredFormatting.SecondaryText
	if main == "" {
		main = m.cfg.describe(row.ResultEntry)
		secondary = ""
	}

	var text string
	switch {
	case selected:
		text = s.SelectedRow.Render("> " + main)
	case row.IsPredefinedPlace || row.IsCurrentLocation:
		text = s.Row.Render(s.Predefined.Render(main))
	default:
		text = s.Row.Render(s.MainText.Render(main))
	}
	if secondary != "" {
		text += " " + s.SecondaryText.Render(secondary)
	}
	if row.Loading {
		text += " " + m.spinner.View()
	}
	return text
}
