package ui

import "github.com/charmbracelet/lipgloss"

var (
	Bold    = lipgloss.NewStyle().Bold(true)
	Faint   = lipgloss.NewStyle().Faint(true)
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	Failure = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	Selected = lipgloss.NewStyle().Bold(true).Underline(true)
)
