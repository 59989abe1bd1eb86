package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyclone1070/boxed/internal/ui/models"
	"github.com/Cyclone1070/boxed/internal/ui/views"
	"github.com/Cyclone1070/boxed/internal/workflow"
)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	events <-chan workflow.Event
	cancel func()
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// DefaultSpinner is the spinner used outside tests.
func DefaultSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = views.StatusThinkingStyle
	return sp
}

func newBubbleTeaModel(events <-chan workflow.Event, cancel func(), modelName string, spinnerFactory SpinnerFactory) BubbleTeaModel {
	if cancel == nil {
		cancel = func() {}
	}
	return BubbleTeaModel{
		state: models.State{
			Spinner: spinnerFactory(),
			Model:   modelName,
		},
		events: events,
		cancel: cancel,
	}
}

// Internal messages
type tickMsg time.Time
type eventMsg struct{ event workflow.Event }
type streamClosedMsg struct{}

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	return tea.Batch(
		m.state.Spinner.Tick,
		tick(),
		listenForEvents(m.events),
	)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// The loop stops at its next model call; keep draining until it closes the stream.
			m.state.Cancelled = true
			m.cancel()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		return m, nil

	case tickMsg:
		// Update dot animation
		m.state.DotCount = (m.state.DotCount + 1) % 4
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case eventMsg:
		m.apply(msg.event)
		return m, listenForEvents(m.events)

	case streamClosedMsg:
		m.state.StatusPhase = "done"
		return m, tea.Quit
	}

	return m, nil
}

// apply folds one workflow event into the view state.
func (m *BubbleTeaModel) apply(e workflow.Event) {
	switch ev := e.(type) {
	case workflow.ThinkingEvent:
		m.state.StatusPhase = "thinking"
		m.state.Iteration = ev.Iteration
	case workflow.UsageEvent:
		m.state.PromptTokens += ev.PromptTokens
		m.state.ResponseTokens += ev.ResponseTokens
	case workflow.ToolStartEvent:
		m.state.StatusPhase = "executing"
		m.state.Tools = append(m.state.Tools, models.ToolLine{
			CallID:  ev.CallID,
			Name:    ev.ToolName,
			Display: ev.RequestDisplay,
		})
	case workflow.ToolEndEvent:
		for i := len(m.state.Tools) - 1; i >= 0; i-- {
			t := &m.state.Tools[i]
			if t.Done || t.CallID != ev.CallID || t.Name != ev.ToolName {
				continue
			}
			t.Done = true
			t.OK = ev.OK
			t.Kind = ev.Kind
			t.Summary = ev.Summary
			break
		}
	case workflow.DoneEvent:
		m.state.StatusPhase = "done"
		m.state.Reason = ev.Reason
		m.state.Iterations = ev.Iterations
	}
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state)
}

func listenForEvents(ch <-chan workflow.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return eventMsg{event: e}
	}
}

func tick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
