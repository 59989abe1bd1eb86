package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/boxed/internal/ui/models"
)

// RenderRoot renders the complete progress layout
func RenderRoot(s models.State) string {
	if len(s.Tools) == 0 {
		return RenderStatus(s) + "\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left, RenderTools(s), "", RenderStatus(s)) + "\n"
}
