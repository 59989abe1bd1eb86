package gemini

import (
	"errors"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/Cyclone1070/boxed/internal/conversation"
	"github.com/Cyclone1070/boxed/internal/provider"
	"github.com/Cyclone1070/boxed/internal/tool"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

// toGeminiContents converts a transcript to Gemini Content format.
// Consecutive tool turns are merged into a single user content holding one
// FunctionResponse per call, the shape the API expects after a multi-call reply.
func toGeminiContents(turns []conversation.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	var pending *genai.Content

	flush := func() {
		if pending != nil {
			contents = append(contents, pending)
			pending = nil
		}
	}

	for _, turn := range turns {
		switch t := turn.(type) {
		case conversation.UserTurn:
			flush()
			contents = append(contents, &genai.Content{
				Role:  roleUser,
				Parts: []*genai.Part{genai.NewPartFromText(t.Text)},
			})
		case conversation.AssistantTurn:
			flush()
			if c := assistantContent(t); c != nil {
				contents = append(contents, c)
			}
		case conversation.ToolTurn:
			if pending == nil {
				pending = &genai.Content{Role: roleUser}
			}
			pending.Parts = append(pending.Parts, &genai.Part{FunctionResponse: functionResponse(t)})
		}
	}
	flush()

	return contents
}

func assistantContent(t conversation.AssistantTurn) *genai.Content {
	parts := make([]*genai.Part, 0, len(t.ToolCalls)+1)
	if t.Text != "" {
		parts = append(parts, genai.NewPartFromText(t.Text))
	}
	for _, call := range t.ToolCalls {
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				ID:   call.ID,
				Name: call.Name,
				Args: call.Args,
			},
		})
	}
	// Skip empty messages
	if len(parts) == 0 {
		return nil
	}
	return &genai.Content{Role: roleModel, Parts: parts}
}

func functionResponse(t conversation.ToolTurn) *genai.FunctionResponse {
	key := "output"
	content := ""
	if t.Result != nil {
		content = t.Result.LLMContent()
		if !t.Result.OK() {
			key = "error"
		}
	}
	return &genai.FunctionResponse{
		ID:       t.Call.ID,
		Name:     t.Call.Name,
		Response: map[string]any{key: content},
	}
}

// toGeminiConfig builds the generation config for one request.
func toGeminiConfig(systemInstruction string, decls []tool.Declaration) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		SafetySettings: defaultSafetySettings(),
	}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(systemInstruction)},
		}
	}
	if len(decls) > 0 {
		config.Tools = toGeminiTools(decls)
	}
	return config
}

// defaultSafetySettings returns safety settings with BLOCK_NONE for all categories.
func defaultSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHateSpeech,
		genai.HarmCategoryDangerousContent,
		genai.HarmCategoryHarassment,
		genai.HarmCategorySexuallyExplicit,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{Category: c, Threshold: genai.HarmBlockThresholdOff})
	}
	return settings
}

// toGeminiTools converts tool declarations to Gemini tools.
func toGeminiTools(decls []tool.Declaration) []*genai.Tool {
	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, d := range decls {
		fd := &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
		}
		if d.Parameters != nil {
			fd.Parameters = toGeminiSchema(d.Parameters)
		}
		functionDeclarations = append(functionDeclarations, fd)
	}
	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts a tool schema to Gemini Schema, recursively.
func toGeminiSchema(s *tool.Schema) *genai.Schema {
	schema := &genai.Schema{
		Type:        toGeminiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
	}
	if len(s.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			schema.Properties[name] = toGeminiSchema(prop)
		}
	}
	if s.Items != nil {
		schema.Items = toGeminiSchema(s.Items)
	}
	return schema
}

// toGeminiType converts a schema type to Gemini Type.
func toGeminiType(t tool.Type) genai.Type {
	switch t {
	case tool.TypeString:
		return genai.TypeString
	case tool.TypeNumber:
		return genai.TypeNumber
	case tool.TypeInteger:
		return genai.TypeInteger
	case tool.TypeBoolean:
		return genai.TypeBoolean
	case tool.TypeArray:
		return genai.TypeArray
	case tool.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// fromGeminiResponse converts Gemini response to internal format.
// Function calls without an ID are assigned a fresh one.
func fromGeminiResponse(resp *genai.GenerateContentResponse) (*provider.Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeEmptyResponse,
			Message: "no candidates in response",
		}
	}

	candidate := resp.Candidates[0]

	// Check finish reason
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeContentBlocked,
			Message: "content blocked by safety filters",
		}
	}

	out := &provider.Response{Usage: usage(resp.UsageMetadata)}
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			if part.FunctionCall != nil {
				id := part.FunctionCall.ID
				if id == "" {
					id = uuid.NewString()
				}
				out.ToolCalls = append(out.ToolCalls, tool.Call{
					ID:   id,
					Name: part.FunctionCall.Name,
					Args: part.FunctionCall.Args,
				})
				continue
			}
			if part.Text != "" && !part.Thought {
				out.Text += part.Text
			}
		}
	}

	if candidate.FinishReason == genai.FinishReasonMaxTokens && len(out.ToolCalls) == 0 && out.Text == "" {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeContextLength,
			Message: "response truncated due to max tokens",
		}
	}

	return out, nil
}

func usage(meta *genai.GenerateContentResponseUsageMetadata) provider.Usage {
	if meta == nil {
		return provider.Usage{}
	}
	return provider.Usage{
		PromptTokens:   int(meta.PromptTokenCount),
		ResponseTokens: int(meta.CandidatesTokenCount),
		TotalTokens:    int(meta.TotalTokenCount),
	}
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return provider.FromStatus(apiErrPtr.Code, apiErrPtr.Message, err)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return provider.FromStatus(apiErr.Code, apiErr.Message, err)
	}

	return provider.FromTransport(err)
}
