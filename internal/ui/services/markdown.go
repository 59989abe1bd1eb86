package services

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for a terminal of the given width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour, picking a style from the terminal background.
type GlamourRenderer struct{}

func (GlamourRenderer) Render(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

// RenderMarkdown renders content, falling back to the raw text if rendering fails.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) string {
	if renderer == nil || strings.TrimSpace(content) == "" {
		return content
	}
	if width <= 0 {
		width = 80
	}
	out, err := renderer.Render(content, width)
	if err != nil {
		return content
	}
	return out
}
