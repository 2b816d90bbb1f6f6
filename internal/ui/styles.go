package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
)

// statusStyles maps task status strings to their display style.
var statusStyles = map[string]lipgloss.Style{
	"todo":        StyleSubtle,
	"in-progress": StyleWarning,
	"completed":   StyleSuccess,
	"cancelled":   StyleError,
}

// priorityStyles maps task priority strings to their display style.
var priorityStyles = map[string]lipgloss.Style{
	"low":    StyleSubtle,
	"medium": lipgloss.NewStyle().Foreground(ColorText),
	"high":   StyleWarning,
	"urgent": StyleError.Bold(true),
}

// RenderStatus returns a status string styled for terminal display.
func RenderStatus(status string) string {
	if style, ok := statusStyles[status]; ok {
		return style.Render(status)
	}
	return status
}

// RenderPriority returns a priority string styled for terminal display.
func RenderPriority(priority string) string {
	if style, ok := priorityStyles[priority]; ok {
		return style.Render(priority)
	}
	return priority
}
