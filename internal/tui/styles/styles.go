// Package styles defines the shared lipgloss styles for the runner TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(MutedColor)

	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextColor).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor)

	Countdown = lipgloss.NewStyle().
			Bold(true).
			Foreground(SecondaryColor)

	// SicknessFlash is the visual acknowledgment of an accepted report.
	SicknessFlash = lipgloss.NewStyle().
			Bold(true).
			Foreground(WarningColor).
			Padding(0, 1).
			Border(lipgloss.ThickBorder()).
			BorderForeground(WarningColor)

	StateLabel = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	Summary = lipgloss.NewStyle().
		Foreground(TextColor).
		Padding(1, 2).
		Border(lipgloss.NormalBorder()).
		BorderForeground(SecondaryColor)

	Help = lipgloss.NewStyle().
		Foreground(MutedColor)
)
