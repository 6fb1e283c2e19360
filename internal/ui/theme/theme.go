// Package theme holds the terminal palette and shared styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Highlight = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// States
var (
	Good = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Components
var (
	BarFilled = lipgloss.NewStyle().
			Foreground(Secondary)

	BarEmpty = lipgloss.NewStyle().
			Foreground(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)
