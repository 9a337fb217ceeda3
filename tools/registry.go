package tools

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/agentlab/corag-agents/components"
)

var ErrToolNotFound = errors.New("tool not found")

// Registry holds the tools an agent may call, in registration order
type Registry struct {
	mu    sync.RWMutex
	tools []Tool
	index map[string]int
}

// NewRegistry returns a Registry holding tools
func NewRegistry(tools ...Tool) *Registry {
	ret := &Registry{
		index: make(map[string]int, len(tools)),
	}
	ret.Register(tools...)
	return ret
}

// Register adds tools, replacing any tool registered under the same title
func (r *Registry) Register(tools ...Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tools {
		if idx, ok := r.index[t.Title()]; ok {
			r.tools[idx] = t
			continue
		}
		r.index[t.Title()] = len(r.tools)
		r.tools = append(r.tools, t)
	}
}

// Get returns the tool registered under title
func (r *Registry) Get(title string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.index[title]
	if !ok {
		return nil, false
	}
	return r.tools[idx], true
}

// Len returns the number of registered tools
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Definitions returns the definitions of all registered tools
func (r *Registry) Definitions() []components.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]components.ToolDefinition, 0, len(r.tools))
	for _, t := range r.tools {
		ret = append(ret, t.Definition())
	}
	return ret
}

// Call dispatches a model tool call to the matching tool
func (r *Registry) Call(ctx context.Context, call components.ToolCall) (string, error) {
	t, ok := r.Get(call.Name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, call.Name)
	}
	return t.Call(ctx, call.Arguments)
}
