package components

import (
	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// ToolCall is a tool invocation requested by the model
type ToolCall struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// ToolDefinition describes a tool the model may call.
// Parameters holds the JSON schema of the tool input.
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Parameters  any    `json:"parameters,omitempty"`
}

// ToOpenAI convert definition to an openai function tool
func (d ToolDefinition) ToOpenAI() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.Parameters,
		},
	}
}

// ToAnthropic convert definition to an anthropic tool
func (d ToolDefinition) ToAnthropic() anthropic.ToolDefinition {
	return anthropic.ToolDefinition{
		Name:        d.Name,
		Description: d.Description,
		InputSchema: d.Parameters,
	}
}

func ToolCallsToOpenAI(src []ToolCall) []openai.ToolCall {
	list := make([]openai.ToolCall, 0, len(src))
	for _, v := range src {
		list = append(list, openai.ToolCall{
			ID:   v.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      v.Name,
				Arguments: v.Arguments,
			},
		})
	}
	return list
}

func ToolCallsFromOpenAI(src []openai.ToolCall) []ToolCall {
	list := make([]ToolCall, 0, len(src))
	for _, v := range src {
		list = append(list, ToolCall{
			ID:        v.ID,
			Name:      v.Function.Name,
			Arguments: v.Function.Arguments,
		})
	}
	return list
}
