package components

import (
	"testing"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageToOpenAI(t *testing.T) {
	msg := NewMessage(AssistantRole, "").SetToolCalls([]ToolCall{{ID: "call_1", Name: "rag_search", Arguments: `{"query":"x"}`}})
	var dist openai.ChatCompletionMessage
	msg.ToOpenAI(&dist)
	assert.Equal(t, openai.ChatMessageRoleAssistant, dist.Role)
	require.Len(t, dist.ToolCalls, 1)
	assert.Equal(t, "rag_search", dist.ToolCalls[0].Function.Name)
	assert.Equal(t, openai.ToolTypeFunction, dist.ToolCalls[0].Type)

	var tool openai.ChatCompletionMessage
	NewToolMessage("call_1", "result", false).ToOpenAI(&tool)
	assert.Equal(t, openai.ChatMessageRoleTool, tool.Role)
	assert.Equal(t, "call_1", tool.ToolCallID)
	assert.Equal(t, "result", tool.Content)
}

func TestMessageToAnthropic(t *testing.T) {
	var user anthropic.Message
	NewMessage(UserRole, "hello").ToAnthropic(&user)
	assert.Equal(t, anthropic.RoleUser, user.Role)
	require.Len(t, user.Content, 1)
	assert.Equal(t, anthropic.MessagesContentTypeText, user.Content[0].Type)

	var assistant anthropic.Message
	NewMessage(AssistantRole, "thinking").
		SetToolCalls([]ToolCall{{ID: "toolu_1", Name: "calculate", Arguments: ""}}).
		ToAnthropic(&assistant)
	assert.Equal(t, anthropic.RoleAssistant, assistant.Role)
	require.Len(t, assistant.Content, 2)
	assert.Equal(t, anthropic.MessagesContentTypeToolUse, assistant.Content[1].Type)
	require.NotNil(t, assistant.Content[1].MessageContentToolUse)
	assert.JSONEq(t, "{}", string(assistant.Content[1].MessageContentToolUse.Input))

	var tool anthropic.Message
	NewToolMessage("toolu_1", "boom", true).ToAnthropic(&tool)
	assert.Equal(t, anthropic.RoleUser, tool.Role)
	require.Len(t, tool.Content, 1)
	assert.Equal(t, anthropic.MessagesContentTypeToolResult, tool.Content[0].Type)
}
