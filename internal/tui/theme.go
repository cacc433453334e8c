package tui

import "charm.land/lipgloss/v2"

// Color palette — restrained, assessment-appropriate.
var (
	primary = lipgloss.Color("#2563EB") // Blue
	success = lipgloss.Color("#22C55E") // Green
	danger  = lipgloss.Color("#F43F5E") // Rose
	text    = lipgloss.Color("#F8FAFC") // White
	textDim = lipgloss.Color("#94A3B8") // Slate
	border  = lipgloss.Color("#334155") // Slate
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	bodyStyle = lipgloss.NewStyle().
			Foreground(text)

	hintStyle = lipgloss.NewStyle().
			Foreground(textDim).
			Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(danger)

	doneStyle = lipgloss.NewStyle().
			Foreground(success).
			Bold(true)
)
