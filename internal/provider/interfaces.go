package provider

import (
	"context"

	"github.com/Cyclone1070/boxed/internal/conversation"
	"github.com/Cyclone1070/boxed/internal/tool"
)

// Provider is a model backend the agent loop can consult.
type Provider interface {
	// Generate sends the whole request to the model and returns its reply.
	// Errors are *ProviderError values.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Model returns the configured model name.
	Model() string
}

// Request is everything one model invocation sees.
type Request struct {
	Transcript        []conversation.Turn
	Tools             []tool.Declaration // nil for a plain, tool-less generation
	SystemInstruction string
}

// Response is one model reply. ToolCalls keeps the order the model emitted them in.
type Response struct {
	Text      string
	ToolCalls []tool.Call
	Usage     Usage
}

// Usage holds token accounting for one invocation.
type Usage struct {
	PromptTokens   int
	ResponseTokens int
	TotalTokens    int
}
