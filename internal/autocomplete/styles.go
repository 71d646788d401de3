package autocomplete

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("6")
	colorYellow = lipgloss.Color("3")
	colorWhite  = lipgloss.Color("15")
	colorGray   = lipgloss.Color("8")
)

// Styles holds the lipgloss styles used by View. Override individual fields
// on the result of DefaultStyles.
type Styles struct {
	Container     lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	Header        lipgloss.Style
	Row           lipgloss.Style
	SelectedRow   lipgloss.Style
	MainText      lipgloss.Style
	SecondaryText lipgloss.Style
	Predefined    lipgloss.Style
	Loading       lipgloss.Style
	Separator     lipgloss.Style
	PoweredBy     lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Container: lipgloss.NewStyle(),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan),
		Header:        lipgloss.NewStyle().Foreground(colorWhite).Bold(true),
		Row:           lipgloss.NewStyle().PaddingLeft(2),
		SelectedRow:   lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
		MainText:      lipgloss.NewStyle().Foreground(colorWhite),
		SecondaryText: lipgloss.NewStyle().Foreground(colorGray),
		Predefined:    lipgloss.NewStyle().Foreground(colorCyan),
		Loading:       lipgloss.NewStyle().Foreground(colorYellow).Italic(true),
		Separator:     lipgloss.NewStyle().Foreground(colorGray),
		PoweredBy:     lipgloss.NewStyle().Foreground(colorGray).Italic(true),
	}
}
