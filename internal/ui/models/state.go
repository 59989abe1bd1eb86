package models

import (
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/Cyclone1070/boxed/internal/tool"
)

// State is everything the progress view renders.
type State struct {
	Spinner  spinner.Model
	DotCount int
	Width    int

	StatusPhase string // "thinking", "executing" or "done"
	Iteration   int
	Model       string

	Tools []ToolLine

	PromptTokens   int
	ResponseTokens int

	Reason     string
	Iterations int
	Cancelled  bool
}

// ToolLine is one tool call as shown in the progress view.
type ToolLine struct {
	CallID  string
	Name    string
	Display string
	Done    bool
	OK      bool
	Kind    tool.FailureKind
	Summary string
}
