package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors matching output/colors.go
var (
	colorCyan    = lipgloss.Color("6")
	colorYellow  = lipgloss.Color("3")
	colorRed     = lipgloss.Color("1")
	colorGreen   = lipgloss.Color("2")
	colorMagenta = lipgloss.Color("5")
	colorWhite   = lipgloss.Color("15")
	colorGray    = lipgloss.Color("8")
)

// Text styles
var (
	styleName    = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleCoord   = lipgloss.NewStyle().Foreground(colorGreen)
	stylePlaceID = lipgloss.NewStyle().Foreground(colorCyan)
	styleTypes   = lipgloss.NewStyle().Foreground(colorMagenta)
	styleMuted   = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

// Panel border styles
var (
	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan)

	stylePanelNormal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray)
)

// Selected item in a list
var styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

// Status line variants
var (
	styleStatusInfo  = lipgloss.NewStyle().Foreground(colorGreen)
	styleStatusWarn  = lipgloss.NewStyle().Foreground(colorYellow)
	styleStatusError = lipgloss.NewStyle().Foreground(colorRed)
)

// Logo/brand style
var styleLogo = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
