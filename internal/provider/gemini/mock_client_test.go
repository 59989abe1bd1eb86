package gemini

import (
	"context"

	"google.golang.org/genai"
)

// recordingClient stands in for the genai client, recording the last request.
type recordingClient struct {
	reply *genai.GenerateContentResponse
	err   error

	calls    int
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (c *recordingClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	c.calls++
	c.model, c.contents, c.config = model, contents, config
	return c.reply, c.err
}
