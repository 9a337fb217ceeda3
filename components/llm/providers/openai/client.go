package openai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/agentlab/corag-agents/components"
	"github.com/agentlab/corag-agents/components/llm"
)

// Client is an llm.Client backed by an OpenAI compatible chat completions API
type Client struct {
	*openai.Client
}

var _ llm.Client = (*Client)(nil)

// New returns a Client wrapping clt
func New(clt *openai.Client) *Client {
	return &Client{Client: clt}
}

// NewFromKey builds a Client from an api key and an optional base url
func NewFromKey(authToken string, baseURL string) *Client {
	cfg := openai.DefaultConfig(authToken)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return New(openai.NewClientWithConfig(cfg))
}

func (c *Client) Provider() llm.Provider {
	return llm.ProviderOpenAI
}

// Chat sends one chat completion round
func (c *Client) Chat(ctx context.Context, req *llm.Request, llmResp *components.LLMResponse) (*components.Message, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1),
	}
	if req.System != "" {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, msg := range req.Messages {
		var v openai.ChatCompletionMessage
		msg.ToOpenAI(&v)
		chatReq.Messages = append(chatReq.Messages, v)
	}
	for _, tool := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, tool.ToOpenAI())
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}
	res, err := c.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	if llmResp != nil {
		llmResp.FromOpenAI(&res)
	}
	if len(res.Choices) == 0 {
		return nil, llm.ErrEmptyChoices
	}
	choice := res.Choices[0].Message
	msg := components.NewMessage(components.AssistantRole, choice.Content)
	if len(choice.ToolCalls) > 0 {
		msg.SetToolCalls(components.ToolCallsFromOpenAI(choice.ToolCalls))
	}
	return msg, nil
}
