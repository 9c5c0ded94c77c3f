package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("212")).Underline(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	contactedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)
