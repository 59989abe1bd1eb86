package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockMarkdownRenderer struct {
	err   error
	width int
}

func (m *MockMarkdownRenderer) Render(content string, width int) (string, error) {
	m.width = width
	if m.err != nil {
		return "", m.err
	}
	return "rendered: " + content, nil
}

func TestRenderMarkdown(t *testing.T) {
	t.Run("uses renderer", func(t *testing.T) {
		r := &MockMarkdownRenderer{}
		assert.Equal(t, "rendered: # hi", RenderMarkdown("# hi", 100, r))
		assert.Equal(t, 100, r.width)
	})

	t.Run("defaults width", func(t *testing.T) {
		r := &MockMarkdownRenderer{}
		RenderMarkdown("x", 0, r)
		assert.Equal(t, 80, r.width)
	})

	t.Run("falls back on error", func(t *testing.T) {
		r := &MockMarkdownRenderer{err: errors.New("boom")}
		assert.Equal(t, "**bold**", RenderMarkdown("**bold**", 80, r))
	})

	t.Run("blank content untouched", func(t *testing.T) {
		assert.Equal(t, "  ", RenderMarkdown("  ", 80, &MockMarkdownRenderer{}))
	})
}

func TestGlamourRenderer(t *testing.T) {
	out, err := GlamourRenderer{}.Render("# Title\n\nsome *text*", 60)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "Title"))
	assert.True(t, strings.Contains(out, "text"))
}
