package workflow

import "github.com/Cyclone1070/boxed/internal/tool"

// Event is the interface for all workflow events.
// UI handles events via type switch.
type Event interface {
	isEvent()
}

// ThinkingEvent is emitted before each model invocation.
type ThinkingEvent struct {
	Iteration int // 1-based
}

func (ThinkingEvent) isEvent() {}

// TextEvent is emitted when the LLM produces text output.
type TextEvent struct {
	Text string
}

func (TextEvent) isEvent() {}

// UsageEvent reports token accounting for one model invocation.
type UsageEvent struct {
	PromptTokens   int
	ResponseTokens int
}

func (UsageEvent) isEvent() {}

// ToolStartEvent is emitted when a tool execution begins.
type ToolStartEvent struct {
	CallID         string
	ToolName       string
	RequestDisplay string // e.g., "src/main.py"
}

func (ToolStartEvent) isEvent() {}

// ToolEndEvent is emitted when a tool call has produced its result.
type ToolEndEvent struct {
	CallID   string
	ToolName string
	OK       bool
	Kind     tool.FailureKind // empty on success
	Summary  string           // first line of the result, shortened
}

func (ToolEndEvent) isEvent() {}

// DoneEvent is emitted once when the workflow loop terminates.
type DoneEvent struct {
	Reason     string
	Iterations int
}

func (DoneEvent) isEvent() {}
