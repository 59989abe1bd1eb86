package openai

import (
	"encoding/json"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Cyclone1070/boxed/internal/conversation"
	"github.com/Cyclone1070/boxed/internal/provider"
	"github.com/Cyclone1070/boxed/internal/tool"
)

// unparsedArgumentsKey carries arguments that were not valid JSON. No tool declares it,
// so the call is rejected as invalid arguments and the model sees why.
const unparsedArgumentsKey = "unparsed_arguments"

// toOpenAIMessages converts a transcript to chat messages, system message first.
// Each tool turn becomes its own tool message linked by call ID.
func toOpenAIMessages(system string, turns []conversation.Turn) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(turns)+1)

	if system != "" {
		result = append(result, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	for _, turn := range turns {
		switch t := turn.(type) {
		case conversation.UserTurn:
			result = append(result, openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleUser,
				Content: t.Text,
			})
		case conversation.AssistantTurn:
			msg := openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: t.Text,
			}
			for _, call := range t.ToolCalls {
				args, err := json.Marshal(call.Args)
				if err != nil || call.Args == nil {
					args = []byte("{}")
				}
				msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
					ID:   call.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      call.Name,
						Arguments: string(args),
					},
				})
			}
			result = append(result, msg)
		case conversation.ToolTurn:
			content := ""
			if t.Result != nil {
				content = t.Result.LLMContent()
			}
			result = append(result, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    content,
				Name:       t.Call.Name,
				ToolCallID: t.Call.ID,
			})
		}
	}

	return result
}

// toOpenAITools converts tool declarations to OpenAI function definitions.
func toOpenAITools(decls []tool.Declaration) []openai.Tool {
	result := make([]openai.Tool, len(decls))
	for i, d := range decls {
		var params any = d.Parameters
		if d.Parameters == nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		result[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  params,
			},
		}
	}
	return result
}

func fromOpenAIResponse(resp openai.ChatCompletionResponse) (*provider.Response, error) {
	if len(resp.Choices) == 0 {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeEmptyResponse,
			Message: "no choices in response",
		}
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeContentBlocked,
			Message: "content blocked by content filter",
		}
	}

	out := &provider.Response{
		Text: choice.Message.Content,
		Usage: provider.Usage{
			PromptTokens:   resp.Usage.PromptTokens,
			ResponseTokens: resp.Usage.CompletionTokens,
			TotalTokens:    resp.Usage.TotalTokens,
		},
	}
	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, tool.Call{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: parseArguments(tc.Function.Arguments),
		})
	}
	return out, nil
}

func parseArguments(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return map[string]any{unparsedArgumentsKey: raw}
	}
	return args
}

// mapOpenAIError maps go-openai errors to provider errors.
func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return provider.FromStatus(apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return provider.FromStatus(reqErr.HTTPStatusCode, reqErr.Error(), err)
	}
	return provider.FromTransport(err)
}
