// Package ui holds the terminal styling used by the CLI.
package ui

import "os"

// ANSI styles. They are emptied by Disable, so output stays plain when
// colors are off.
var (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

func init() {
	// https://no-color.org
	if os.Getenv("NO_COLOR") != "" {
		Disable()
	}
}

// Disable turns every style into the empty string
func Disable() {
	for _, c := range []*string{
		&ColorReset, &ColorBold, &ColorDim,
		&ColorCyan, &ColorGreen, &ColorYellow, &ColorWhite, &ColorRed,
	} {
		*c = ""
	}
}

func style(code, s string) string {
	if code == "" {
		return s
	}
	return code + s + ColorReset
}

func Bold(s string) string { return style(ColorBold, s) }

// Success renders s in green
func Success(s string) string { return style(ColorGreen, s) }

// Info renders s dimmed yellow
func Info(s string) string { return style(ColorDim+ColorYellow, s) }

func Error(s string) string { return style(ColorRed, s) }
