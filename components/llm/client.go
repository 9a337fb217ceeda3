package llm

import (
	"context"
	"errors"

	"github.com/agentlab/corag-agents/components"
)

// Provider identifies a chat model backend
type Provider = string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// ErrEmptyChoices is returned when the provider answers without any message
var ErrEmptyChoices = errors.New("llm: response has no choices")

// Request is a provider neutral chat request
type Request struct {
	// Model llm model name
	Model string
	// System is the system prompt, sent ahead of Messages
	System string
	// Messages is the conversation so far
	Messages []components.Message
	// Tools the model may call
	Tools []components.ToolDefinition
	// Temperature for response generation, typically ranging from 0 to 1.
	Temperature float32
	// MaxTokens Maximum number of tokens allowed in the response
	MaxTokens int
	// JSONMode asks the model to answer with a single JSON object
	JSONMode bool
}

// Client sends one chat round to a model and returns the assistant message.
// resp may be nil; when set it receives the response metadata and accumulated usage.
type Client interface {
	Provider() Provider
	Chat(ctx context.Context, req *Request, resp *components.LLMResponse) (*components.Message, error)
}
