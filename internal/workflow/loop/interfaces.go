package loop

import (
	"context"

	"github.com/Cyclone1070/boxed/internal/provider"
	"github.com/Cyclone1070/boxed/internal/tool"
	"github.com/Cyclone1070/boxed/internal/workflow"
)

// llmProvider communicates with an LLM.
type llmProvider interface {
	// Generate sends the request to the LLM and returns its reply.
	Generate(ctx context.Context, req *provider.Request) (*provider.Response, error)
}

// toolManager manages tool storage and execution.
type toolManager interface {
	// Declarations returns all tool schemas for the LLM.
	Declarations() []tool.Declaration

	// Execute runs a tool call and returns its result. Failures are results, not errors.
	// It emits ToolStartEvent and ToolEndEvent to the events channel.
	Execute(ctx context.Context, call tool.Call, events chan<- workflow.Event) tool.Result
}
