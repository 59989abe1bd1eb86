package openai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Cyclone1070/boxed/internal/provider"
)

// OpenAIProvider implements provider.Provider for the OpenAI chat completions API.
type OpenAIProvider struct {
	client    ChatClient
	modelName string
}

// New creates a new OpenAIProvider with the specified client and model.
func New(client ChatClient, modelName string) *OpenAIProvider {
	if client == nil {
		panic("client is required")
	}
	return &OpenAIProvider{client: client, modelName: modelName}
}

// Generate sends the transcript as a chat completion and returns the reply.
func (p *OpenAIProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:    p.modelName,
		Messages: toOpenAIMessages(req.SystemInstruction, req.Transcript),
	}
	if len(req.Tools) > 0 {
		chatReq.Tools = toOpenAITools(req.Tools)
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	return fromOpenAIResponse(resp)
}

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string {
	return p.modelName
}
