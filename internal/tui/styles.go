package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	primary   = lipgloss.Color("#7c3aed") // Purple
	success   = lipgloss.Color("#22c55e") // Green
	danger    = lipgloss.Color("#ef4444") // Red
	textMuted = lipgloss.Color("#94a3b8") // Slate-400
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(textMuted)

	okStyle = lipgloss.NewStyle().
		Foreground(success).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(danger).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(textMuted).
			Faint(true)
)
