// Package ui provides terminal output styling for the sshwrap CLI.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorError)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Success renders a green success line with a check mark.
func Success(msg string) string {
	return successStyle.Render(SymbolSuccess + " " + msg)
}

// Fail renders a red failure line with a cross mark.
func Fail(msg string) string {
	return errorStyle.Render(SymbolFail + " " + msg)
}

// Muted renders secondary text in gray.
func Muted(msg string) string {
	return mutedStyle.Render(msg)
}
