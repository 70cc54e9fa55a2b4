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
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Expression = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Verdicts
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Progress segments
var (
	ProgressCorrect = lipgloss.NewStyle().
			Background(Success)

	ProgressWrong = lipgloss.NewStyle().
			Background(Error)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
