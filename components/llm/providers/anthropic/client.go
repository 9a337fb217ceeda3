package anthropic

import (
	"context"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/agentlab/corag-agents/components"
	"github.com/agentlab/corag-agents/components/llm"
)

// DefaultMaxTokens is used when the request leaves MaxTokens unset, the messages api requires it
const DefaultMaxTokens = 4096

// jsonModeInstruction is appended to the system prompt, the messages api has no json response format
const jsonModeInstruction = "Respond with a single JSON object and nothing else."

// Client is an llm.Client backed by the Anthropic messages API
type Client struct {
	*anthropic.Client
}

var _ llm.Client = (*Client)(nil)

// New returns a Client wrapping clt
func New(clt *anthropic.Client) *Client {
	return &Client{Client: clt}
}

// NewFromKey builds a Client from an api key and an optional base url
func NewFromKey(authToken string, baseURL string) *Client {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return New(anthropic.NewClient(authToken, opts...))
}

func (c *Client) Provider() llm.Provider {
	return llm.ProviderAnthropic
}

// Chat sends one messages round
func (c *Client) Chat(ctx context.Context, req *llm.Request, llmResp *components.LLMResponse) (*components.Message, error) {
	chatReq := anthropic.MessagesRequest{
		Model:     anthropic.Model(req.Model),
		System:    req.System,
		MaxTokens: req.MaxTokens,
		Messages:  ConvertMessages(req.Messages),
	}
	if chatReq.MaxTokens <= 0 {
		chatReq.MaxTokens = DefaultMaxTokens
	}
	if req.Temperature > 0 {
		temperature := req.Temperature
		chatReq.Temperature = &temperature
	}
	if req.JSONMode {
		chatReq.System = strings.TrimSpace(chatReq.System + "\n\n" + jsonModeInstruction)
	}
	for _, tool := range req.Tools {
		chatReq.Tools = append(chatReq.Tools, tool.ToAnthropic())
	}
	res, err := c.CreateMessages(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	if llmResp != nil {
		llmResp.FromAnthropic(&res)
	}
	var (
		texts []string
		calls []components.ToolCall
	)
	for _, content := range res.Content {
		switch content.Type {
		case anthropic.MessagesContentTypeText:
			if content.Text != nil {
				texts = append(texts, *content.Text)
			}
		case anthropic.MessagesContentTypeToolUse:
			if use := content.MessageContentToolUse; use != nil {
				calls = append(calls, components.ToolCall{
					ID:        use.ID,
					Name:      use.Name,
					Arguments: string(use.Input),
				})
			}
		}
	}
	if len(texts) == 0 && len(calls) == 0 {
		return nil, llm.ErrEmptyChoices
	}
	msg := components.NewMessage(components.AssistantRole, strings.Join(texts, "\n"))
	if len(calls) > 0 {
		msg.SetToolCalls(calls)
	}
	return msg, nil
}

// ConvertMessages converts the history into anthropic messages.
// Consecutive tool results are folded into one user message, the api rejects adjacent user turns.
func ConvertMessages(src []components.Message) []anthropic.Message {
	ret := make([]anthropic.Message, 0, len(src))
	for _, msg := range src {
		var v anthropic.Message
		msg.ToAnthropic(&v)
		if l := len(ret); l > 0 && msg.Role() == components.ToolRole && ret[l-1].Role == anthropic.RoleUser {
			ret[l-1].Content = append(ret[l-1].Content, v.Content...)
			continue
		}
		ret = append(ret, v)
	}
	return ret
}
