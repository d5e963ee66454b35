package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorInk     lipgloss.Color = "#111827"
	colorText    lipgloss.Color = "#e5e7eb"
	colorSubtle  lipgloss.Color = "#9ca3af"
	colorMuted   lipgloss.Color = "#6b7280"
	colorAccent  lipgloss.Color = "#f59e0b"
	colorError   lipgloss.Color = "#f87171"
	colorSurface lipgloss.Color = "#374151"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	subtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError)
	metaStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	helpStyle   = lipgloss.NewStyle().Foreground(colorMuted)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(colorInk).
			Bold(true).
			Padding(0, 2)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface).
			Padding(0, 1)

	selectedCardStyle = cardStyle.BorderForeground(colorAccent)

	thumbStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)
)
