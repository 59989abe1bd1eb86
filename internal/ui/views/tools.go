package views

import (
	"strings"

	"github.com/Cyclone1070/boxed/internal/ui/models"
)

// RenderTools renders one line per tool call, oldest first.
func RenderTools(s models.State) string {
	lines := make([]string, 0, len(s.Tools))
	for _, t := range s.Tools {
		lines = append(lines, RenderToolLine(t, s.Spinner.View()))
	}
	return strings.Join(lines, "\n")
}

// RenderToolLine renders a single call; running calls show the spinner frame.
func RenderToolLine(t models.ToolLine, frame string) string {
	head := ToolNameStyle.Render(t.Name)
	if t.Display != "" {
		head += " " + t.Display
	}

	switch {
	case !t.Done:
		return frame + " " + head
	case t.OK:
		return ToolOKStyle.Render("✔") + " " + head
	default:
		line := ToolFailedStyle.Render("✘") + " " + head
		if t.Summary != "" {
			line += " " + ToolSummaryStyle.Render(t.Summary)
		}
		return line
	}
}
