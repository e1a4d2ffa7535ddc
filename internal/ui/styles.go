package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	artistStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#888888", Dark: "#888888"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F26056"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	// Bar color ramp, quiet to loud.
	barLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B84DC9"))
	barMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E05FD4"))
	barHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7AE0"))
	peakStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFCD2"))
)
