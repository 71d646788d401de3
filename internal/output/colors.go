package output

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// Colors holds the color functions for different output types
type Colors struct {
	Index      func(format string, a ...interface{}) string
	Name       func(format string, a ...interface{}) string
	Address    func(format string, a ...interface{}) string
	PlaceID    func(format string, a ...interface{}) string
	Types      func(format string, a ...interface{}) string
	Coord      func(format string, a ...interface{}) string
	Predefined func(format string, a ...interface{}) string
	Error      func(format string, a ...interface{}) string
	Header     func(format string, a ...interface{}) string
	Muted      func(format string, a ...interface{}) string
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false // Force colors on
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return fmt.Sprintf(format, a...)
		}
		return &Colors{
			Index:      noColor,
			Name:       noColor,
			Address:    noColor,
			PlaceID:    noColor,
			Types:      noColor,
			Coord:      noColor,
			Predefined: noColor,
			Error:      noColor,
			Header:     noColor,
			Muted:      noColor,
		}
	}

	return &Colors{
		Index:      color.New(color.FgHiBlack).SprintfFunc(),
		Name:       color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Address:    color.New(color.FgWhite).SprintfFunc(),
		PlaceID:    color.New(color.FgCyan).SprintfFunc(),
		Types:      color.New(color.FgMagenta).SprintfFunc(),
		Coord:      color.New(color.FgGreen).SprintfFunc(),
		Predefined: color.New(color.FgYellow, color.Bold).SprintfFunc(),
		Error:      color.New(color.FgRed, color.Bold).SprintfFunc(),
		Header:     color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:      color.New(color.FgHiBlack).SprintfFunc(),
	}
}

// FormatCoord formats a latitude/longitude pair with 7 decimals
func (c *Colors) FormatCoord(lat, lng float64) string {
	return c.Coord("%.7f,%.7f", lat, lng)
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}
