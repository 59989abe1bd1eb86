package gemini

import (
	"context"

	"github.com/Cyclone1070/boxed/internal/provider"
)

// GeminiProvider implements provider.Provider for Google Gemini.
type GeminiProvider struct {
	client    GeminiClient
	modelName string
}

// New creates a new GeminiProvider with the specified client and model.
func New(client GeminiClient, modelName string) *GeminiProvider {
	if client == nil {
		panic("client is required")
	}
	return &GeminiProvider{
		client:    client,
		modelName: modelName,
	}
}

// Generate sends the transcript to the Gemini API and returns the reply.
func (p *GeminiProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	contents := toGeminiContents(req.Transcript)
	config := toGeminiConfig(req.SystemInstruction, req.Tools)

	resp, err := p.client.GenerateContent(ctx, p.modelName, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	return fromGeminiResponse(resp)
}

// Model returns the configured model name.
func (p *GeminiProvider) Model() string {
	return p.modelName
}
