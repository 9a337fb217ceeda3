package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlab/corag-agents/agents/corag"
)

var topics = []string{"nation", "region", "pizza"}

func topicVector(text string) []float32 {
	text = strings.ToLower(text)
	v := make([]float32, len(topics))
	for i, topic := range topics {
		v[i] = 0.01
		if strings.Contains(text, topic) {
			v[i] = 1
		}
	}
	return v
}

// fakeOpenAI serves embeddings and a scripted chat model keyed by the offered tools
func fakeOpenAI(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		resp := openai.EmbeddingResponse{Object: "list", Model: openai.SmallEmbedding3}
		for i, text := range req.Input {
			resp.Data = append(resp.Data, openai.Embedding{Object: "embedding", Embedding: topicVector(text), Index: i})
		}
		resp.Usage.PromptTokens = len(req.Input)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant}
		last := req.Messages[len(req.Messages)-1]
		call := func(name, args string) {
			msg.ToolCalls = []openai.ToolCall{{
				ID:       fmt.Sprintf("call_%d", len(req.Messages)),
				Type:     openai.ToolTypeFunction,
				Function: openai.FunctionCall{Name: name, Arguments: args},
			}}
		}
		tool := ""
		if len(req.Tools) > 0 {
			tool = req.Tools[0].Function.Name
		}
		switch {
		case req.ResponseFormat != nil && req.ResponseFormat.Type == openai.ChatCompletionResponseFormatTypeJSONObject:
			verdict := strings.Contains(last.Content, "regions group nations")
			msg.Content = fmt.Sprintf(`{"fully_answered": %t, "reason": "checked"}`, verdict)
		case last.Role == openai.ChatMessageRoleTool:
			msg.Content = "Answer based on " + last.Content
		case tool == "rag_search":
			args, _ := json.Marshal(map[string]string{"query": firstUser(req)})
			call(tool, string(args))
		case tool == "calculate" && strings.Contains(firstUser(req), "web") && hasTool(req, "web_search"):
			call("web_search", `{"queries":["tpc-h regions"]}`)
		case tool == "calculate":
			call("get_planet_mass", `{"planet":"Earth"}`)
		case tool == "db_get":
			call("db_set", `{"path":["note"],"value":"\"window seat\""}`)
		default:
			msg.Content = "plain"
		}
		resp := openai.ChatCompletionResponse{
			ID:      "chatcmpl-test",
			Object:  "chat.completion",
			Model:   req.Model,
			Choices: []openai.ChatCompletionChoice{{Message: msg, FinishReason: openai.FinishReasonStop}},
			Usage:   openai.Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"url":"https://tpc.org/h","title":"TPC-H schema","content":"regions group nations by continent","score":1}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func firstUser(req openai.ChatCompletionRequest) string {
	for _, m := range req.Messages {
		if m.Role == openai.ChatMessageRoleUser {
			return m.Content
		}
	}
	return ""
}

func hasTool(req openai.ChatCompletionRequest, name string) bool {
	for _, tool := range req.Tools {
		if tool.Function != nil && tool.Function.Name == name {
			return true
		}
	}
	return false
}

func writeConfig(t *testing.T, dir, baseURL string) string {
	path := filepath.Join(dir, "corag.yaml")
	cfg := fmt.Sprintf(`
llm:
  provider: openai
  model: test-model
  api_key: test-key
  base_url: %[1]s/v1
embedding:
  model: text-embedding-3-small
  api_key: test-key
  base_url: %[1]s/v1
retrieval:
  backend: chromem
  path: %[2]s
  collection: kb
  top_k: 1
  chunk_size: 50
  overlap: 0
log:
  level: disabled
database: %[3]s
`, baseURL, filepath.Join(dir, "db"), filepath.Join(dir, "restaurant.json"))
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func execute(t *testing.T, config string, args ...string) (string, error) {
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append(args, "--config", config))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommands(t *testing.T) {
	srv := fakeOpenAI(t)
	dir := t.TempDir()
	config := writeConfig(t, dir, srv.URL)

	docs := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "nations.md"), []byte("# Nations\n\nThe nations table lists countries."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "regions.md"), []byte("# Regions\n\nThe regions table: regions group nations by continent."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "empty.txt"), []byte("   "), 0o644))

	out, err := execute(t, config, "ingest", docs)
	require.NoError(t, err)
	assert.Contains(t, out, `Indexed 2 chunks from 2 documents into "kb"`)

	out, err = execute(t, config, "search", "which region")
	require.NoError(t, err)
	assert.Contains(t, out, "1. # Regions")

	out, err = execute(t, config, "search", "--contains", "Nations", "which region")
	require.NoError(t, err)
	assert.Contains(t, out, "1. # Nations")
	assert.NotContains(t, out, "# Regions")

	out, err = execute(t, config, "ask", "--json", "How", "do", "nations", "relate", "to", "regions?")
	require.NoError(t, err)
	var res corag.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, "checked", res.Evaluation.Reason)
	assert.Contains(t, res.Answer, "regions group nations")

	out, err = execute(t, config, "ask", "--max-attempts", "2", "What", "about", "pizza?")
	require.NoError(t, err)
	assert.Contains(t, out, "Attempt 2/2")
	assert.Contains(t, out, "Final Status: FAILED")

	out, err = execute(t, config, "research", "nations")
	require.NoError(t, err)
	assert.Contains(t, out, "Research Result")

	out, err = execute(t, config, "chat", "How heavy is Earth?")
	require.NoError(t, err)
	assert.Contains(t, out, "mass_kg")

	_, err = execute(t, config, "host", "Please note I want a window seat")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "restaurant.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "window seat")

	_, err = execute(t, config, "ask", " ")
	assert.ErrorIs(t, err, corag.ErrEmptyQuery)
}

func TestAskWebSearch(t *testing.T) {
	srv := fakeOpenAI(t)
	dir := t.TempDir()
	config := writeConfig(t, dir, srv.URL)
	data, err := os.ReadFile(config)
	require.NoError(t, err)
	web := strings.Replace(string(data), "  backend: chromem", "  backend: searxng\n  searxng:\n    base_url: "+srv.URL, 1)
	require.NoError(t, os.WriteFile(config, []byte(web), 0o644))

	out, err := execute(t, config, "ask", "--json", "How do nations relate to regions?")
	require.NoError(t, err)
	var res corag.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Contains(t, res.Answer, "https://tpc.org/h")

	_, err = execute(t, config, "ingest", dir)
	assert.ErrorContains(t, err, "no local index")
}

func TestChatREPL(t *testing.T) {
	srv := fakeOpenAI(t)
	config := writeConfig(t, t.TempDir(), srv.URL)
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader("How heavy is Earth?\n/reset\nexit\nnever read\n"))
	cmd.SetArgs([]string{"chat", "--config", config})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "mass_kg")
	assert.Contains(t, out.String(), "memory cleared")
	assert.Equal(t, 3, strings.Count(out.String(), "you> "))
}

func TestChatWebSearch(t *testing.T) {
	srv := fakeOpenAI(t)
	config := writeConfig(t, t.TempDir(), srv.URL)
	data, err := os.ReadFile(config)
	require.NoError(t, err)
	withWeb := strings.Replace(string(data), "  overlap: 0", "  overlap: 0\n  searxng:\n    base_url: "+srv.URL, 1)
	require.NoError(t, os.WriteFile(config, []byte(withWeb), 0o644))

	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader("Search the web for TPC-H regions\nexit\n"))
	cmd.SetArgs([]string{"chat", "--config", config})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "https://tpc.org/h")
	assert.Contains(t, out.String(), "regions group nations by continent")

	// without an instance the tool is not offered and the question goes to the planet tool
	out, err = execute(t, writeConfig(t, t.TempDir(), srv.URL), "chat", "Search the web for TPC-H regions")
	require.NoError(t, err)
	assert.NotContains(t, out, "tpc.org")
	assert.Contains(t, out, "mass_kg")
}
