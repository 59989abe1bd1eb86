package loop

import (
	"errors"

	"github.com/Cyclone1070/boxed/internal/conversation"
)

// State is the phase the loop is in.
type State int

const (
	StateAwaitingModel State = iota
	StateDispatchingTools
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaitingModel:
		return "awaiting_model"
	case StateDispatchingTools:
		return "dispatching_tools"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Reason says why a run terminated.
type Reason string

const (
	ReasonNoToolCalls  Reason = "no_tool_calls"
	ReasonIterationCap Reason = "iteration_cap"
	ReasonModelError   Reason = "model_error"
)

// ErrIterationCap is returned when the model was still calling tools after the last permitted iteration.
var ErrIterationCap = errors.New("iteration cap reached")

// Outcome describes a finished run. It is returned for every termination reason.
type Outcome struct {
	Reason     Reason
	Iterations int
	FinalText  string // reply text of the last model turn
	Transcript *conversation.Transcript
	Err        error // nil for no_tool_calls
}
