package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Cyclone1070/boxed/internal/ui/models"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State) string {
	var left string

	switch s.StatusPhase {
	case "thinking":
		// Animate the dots
		dots := strings.Repeat(".", s.DotCount)
		left = StatusThinkingStyle.Render(fmt.Sprintf("%s Generating%s (iteration %d)", s.Spinner.View(), dots, s.Iteration))
	case "executing":
		left = StatusExecutingStyle.Render(fmt.Sprintf("%s Running tools", s.Spinner.View()))
	case "done":
		msg := fmt.Sprintf("✔ Done after %d iteration(s)", s.Iterations)
		if s.Cancelled {
			msg = "✘ Cancelled"
		} else if s.Reason != "" && s.Reason != "no_tool_calls" {
			msg = fmt.Sprintf("✘ Stopped: %s after %d iteration(s)", s.Reason, s.Iterations)
		}
		left = StatusDoneStyle.Render(msg)
	default:
		left = StatusDefaultStyle.Render("Starting")
	}

	var right []string
	if s.Model != "" {
		right = append(right, s.Model)
	}
	if s.PromptTokens > 0 || s.ResponseTokens > 0 {
		right = append(right, fmt.Sprintf("%d↑ %d↓ tokens", s.PromptTokens, s.ResponseTokens))
	}
	if len(right) == 0 {
		return left
	}
	dim := StatusDefaultStyle.Foreground(lipgloss.Color("241"))
	return fmt.Sprintf("%s  %s", left, dim.Render(strings.Join(right, " · ")))
}
