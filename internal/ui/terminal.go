package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ConfigureColors sets the lipgloss color profile for the process.
// Colors are disabled when stdout is not a terminal (pipes, CI logs);
// otherwise the profile detected by termenv is used.
func ConfigureColors() {
	if !IsTerminal() {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// DisableColors forces plain output regardless of terminal detection.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
