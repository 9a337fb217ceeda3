package components

import (
	"encoding/json"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"github.com/rs/xid"
	openai "github.com/sashabaranov/go-openai"
)

// NewTurnID returns a new turn ID.
func NewTurnID() string {
	return xid.New().String()
}

// MessageRole is the role of the message sender (e.g., 'user', 'system', 'tool')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
	ToolRole      MessageRole = "tool"
)

// Message Represents a message in the chat history.
type Message struct {
	content string
	// role is the role of the message sender (e.g., 'user', 'system', 'tool')
	role MessageRole
	// toolCalls are the tool invocations requested by an assistant message
	toolCalls []ToolCall
	// toolCallID links a tool message to the call it answers
	toolCallID string
	// isError marks a tool message which carries a failure
	isError bool
	//	turnID is Unique identifier for the turn this message belongs to.
	turnID string
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content string) *Message {
	return &Message{
		role:    role,
		content: content,
	}
}

// NewToolMessage returns a tool result message answering the call with the given id
func NewToolMessage(callID string, content string, isError bool) *Message {
	return &Message{
		role:       ToolRole,
		content:    content,
		toolCallID: callID,
		isError:    isError,
	}
}

// SetTurnID set message turnID
func (m *Message) SetTurnID(turnID string) *Message {
	m.turnID = turnID
	return m
}

// SetToolCalls set the tool calls requested by the assistant
func (m *Message) SetToolCalls(calls []ToolCall) *Message {
	m.toolCalls = calls
	return m
}

// Role returns message role
func (m Message) Role() MessageRole {
	return m.role
}

// Content returns message content
func (m Message) Content() string {
	return m.content
}

// ToolCalls returns the tool calls requested by the message
func (m Message) ToolCalls() []ToolCall {
	return m.toolCalls
}

// ToolCallID returns the id of the tool call this message answers
func (m Message) ToolCallID() string {
	return m.toolCallID
}

// IsError reports whether a tool message carries a failure
func (m Message) IsError() bool {
	return m.isError
}

// TurnID returns message turnID
func (m Message) TurnID() string {
	return m.turnID
}

// ToOpenAI convert message to openai ChatCompletionMessage
func (m Message) ToOpenAI(dist *openai.ChatCompletionMessage) {
	dist.Role = m.role
	dist.Content = m.content
	dist.ToolCallID = m.toolCallID
	if len(m.toolCalls) > 0 {
		dist.ToolCalls = ToolCallsToOpenAI(m.toolCalls)
	}
}

// ToAnthropic convert message to anthropic Message.
// Tool results become user content blocks, assistant tool calls become tool_use blocks.
func (m Message) ToAnthropic(dist *anthropic.Message) {
	switch m.role {
	case ToolRole:
		dist.Role = anthropic.RoleUser
		dist.Content = []anthropic.MessageContent{anthropic.NewToolResultMessageContent(m.toolCallID, m.content, m.isError)}
	case AssistantRole:
		dist.Role = anthropic.RoleAssistant
		dist.Content = make([]anthropic.MessageContent, 0, len(m.toolCalls)+1)
		if m.content != "" {
			dist.Content = append(dist.Content, anthropic.NewTextMessageContent(m.content))
		}
		for _, call := range m.toolCalls {
			args := json.RawMessage(call.Arguments)
			if len(args) == 0 || !json.Valid(args) {
				args = json.RawMessage("{}")
			}
			dist.Content = append(dist.Content, anthropic.NewToolUseMessageContent(call.ID, call.Name, args))
		}
	default:
		dist.Role = anthropic.RoleUser
		dist.Content = []anthropic.MessageContent{anthropic.NewTextMessageContent(m.content)}
	}
}
