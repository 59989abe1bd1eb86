package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyclone1070/boxed/internal/workflow"
)

// UI shows live progress of one agent run using Bubble Tea.
type UI struct {
	program *tea.Program
}

// NewUI creates a progress view fed by events. The caller closes events when the run ends;
// ctrl+c calls cancel. Output goes to out, normally stderr so stdout carries only the answer.
func NewUI(events <-chan workflow.Event, cancel func(), modelName string, out io.Writer, spinnerFactory SpinnerFactory) *UI {
	if spinnerFactory == nil {
		spinnerFactory = DefaultSpinner
	}
	model := newBubbleTeaModel(events, cancel, modelName, spinnerFactory)
	return &UI{
		program: tea.NewProgram(model, tea.WithOutput(out)),
	}
}

// Run blocks until the event stream is closed.
func (u *UI) Run() error {
	_, err := u.program.Run()
	return err
}
