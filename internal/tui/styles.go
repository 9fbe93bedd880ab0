package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	countdownStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D4A017"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	// QR modules need a light background to scan from a dark terminal
	qrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#ffffff"))
)
