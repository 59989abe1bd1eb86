package openai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the subset of the go-openai client this backend needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Dial builds a go-openai client. An empty baseURL keeps the public OpenAI endpoint;
// any OpenAI-compatible server can be targeted otherwise.
func Dial(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}
