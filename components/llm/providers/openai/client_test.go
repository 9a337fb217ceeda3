package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlab/corag-agents/components"
	"github.com/agentlab/corag-agents/components/llm"
)

func TestChat(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role: openai.ChatMessageRoleAssistant,
						ToolCalls: []openai.ToolCall{
							{ID: "call_1", Type: openai.ToolTypeFunction, Function: openai.FunctionCall{Name: "rag_search", Arguments: `{"query":"q"}`}},
						},
					},
					FinishReason: openai.FinishReasonToolCalls,
				},
			},
			Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		})
	}))
	defer srv.Close()

	clt := NewFromKey("test", srv.URL+"/v1")
	req := &llm.Request{
		Model:    "gpt-4o-mini",
		System:   "be strict",
		Messages: []components.Message{*components.NewMessage(components.UserRole, "hello")},
		Tools:    []components.ToolDefinition{{Name: "rag_search", Description: "search", Parameters: map[string]any{"type": "object"}}},
		JSONMode: true,
	}
	var resp components.LLMResponse
	msg, err := clt.Chat(context.Background(), req, &resp)
	require.NoError(t, err)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, "be strict", got.Messages[0].Content)
	require.Len(t, got.Tools, 1)
	assert.Equal(t, "rag_search", got.Tools[0].Function.Name)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, got.ResponseFormat.Type)

	require.Len(t, msg.ToolCalls(), 1)
	assert.Equal(t, "call_1", msg.ToolCalls()[0].ID)
	assert.Equal(t, "chatcmpl-1", resp.ID)
	assert.Equal(t, int64(10), resp.Usage.InputTokens)
	assert.Equal(t, string(openai.FinishReasonToolCalls), resp.FinishReason)
}

func TestChatEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewFromKey("test", srv.URL+"/v1").Chat(context.Background(), &llm.Request{Model: "m"}, nil)
	assert.ErrorIs(t, err, llm.ErrEmptyChoices)
}
