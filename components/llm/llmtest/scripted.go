// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/agentlab/corag-agents/components"
	"github.com/agentlab/corag-agents/components/llm"
)

// ErrScriptExhausted is returned once every scripted reply was consumed
var ErrScriptExhausted = errors.New("llmtest: script exhausted")

// Reply is one scripted model answer
type Reply struct {
	Content   string
	ToolCalls []components.ToolCall
	Err       error
}

// Scripted replays replies in order and records every request it receives
type Scripted struct {
	mu       sync.Mutex
	replies  []Reply
	requests []llm.Request
}

var _ llm.Client = (*Scripted)(nil)

// New returns a Scripted client
func New(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

// Text is a shortcut for a plain text reply
func Text(content string) Reply {
	return Reply{Content: content}
}

// Call is a shortcut for a reply requesting one tool call
func Call(id, name, args string) Reply {
	return Reply{ToolCalls: []components.ToolCall{{ID: id, Name: name, Arguments: args}}}
}

func (s *Scripted) Provider() llm.Provider {
	return "scripted"
}

func (s *Scripted) Chat(ctx context.Context, req *llm.Request, resp *components.LLMResponse) (*components.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := *req
	snapshot.Messages = append([]components.Message(nil), req.Messages...)
	s.requests = append(s.requests, snapshot)
	if len(s.replies) == 0 {
		return nil, ErrScriptExhausted
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	if reply.Err != nil {
		return nil, reply.Err
	}
	if resp != nil {
		resp.Role = components.AssistantRole
		resp.Model = req.Model
		if resp.Usage == nil {
			resp.Usage = new(components.LLMUsage)
		}
		resp.Usage.Merge(&components.LLMUsage{InputTokens: 1, OutputTokens: 1})
	}
	msg := components.NewMessage(components.AssistantRole, reply.Content)
	if len(reply.ToolCalls) > 0 {
		msg.SetToolCalls(reply.ToolCalls)
	}
	return msg, nil
}

// Requests returns the recorded requests
func (s *Scripted) Requests() []llm.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llm.Request(nil), s.requests...)
}

// Remaining returns the number of unconsumed replies
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.replies)
}
