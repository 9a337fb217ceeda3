package components

import (
	"time"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
)

// LLMResponse provider chat response metadata
type LLMResponse struct {
	ID           string      `json:"id,omitempty"`
	Role         MessageRole `json:"role,omitempty"`
	Model        string      `json:"model,omitempty"`
	Usage        *LLMUsage   `json:"usage,omitempty"`
	FinishReason string      `json:"finish_reason,omitempty"`
	Timestamp    int64       `json:"ts,omitempty"`
}

// FromOpenAI convnert response from openai
func (r *LLMResponse) FromOpenAI(v *openai.ChatCompletionResponse) {
	r.ID = v.ID
	r.Role = AssistantRole
	r.Model = v.Model
	r.Timestamp = v.Created
	if r.Usage == nil {
		r.Usage = new(LLMUsage)
	}
	r.Usage.Merge(&LLMUsage{
		InputTokens:  int64(v.Usage.PromptTokens),
		OutputTokens: int64(v.Usage.CompletionTokens),
	})
	if len(v.Choices) > 0 {
		r.FinishReason = string(v.Choices[0].FinishReason)
	}
}

// FromAnthropic convert response from anthropic
func (r *LLMResponse) FromAnthropic(v *anthropic.MessagesResponse) {
	r.ID = v.ID
	r.Role = AssistantRole
	r.Model = string(v.Model)
	r.Timestamp = time.Now().Unix()
	if r.Usage == nil {
		r.Usage = new(LLMUsage)
	}
	r.Usage.Merge(&LLMUsage{
		InputTokens:  int64(v.Usage.InputTokens),
		OutputTokens: int64(v.Usage.OutputTokens),
	})
	r.FinishReason = string(v.StopReason)
}

type LLMUsage struct {
	InputTokens  int64 `json:"input_tokens,omitempty"`
	OutputTokens int64 `json:"output_tokens,omitempty"`
}

// Merge accumulates v into u
func (u *LLMUsage) Merge(v *LLMUsage) {
	if v == nil {
		return
	}
	u.InputTokens += v.InputTokens
	u.OutputTokens += v.OutputTokens
}
