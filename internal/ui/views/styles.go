package views

import "github.com/charmbracelet/lipgloss"

var (
	StatusDefaultStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	StatusThinkingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	StatusExecutingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	StatusDoneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	ToolNameStyle    = lipgloss.NewStyle().Bold(true)
	ToolOKStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	ToolFailedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	ToolSummaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
