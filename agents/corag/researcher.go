package corag

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentlab/corag-agents/agents"
	"github.com/agentlab/corag-agents/components"
	"github.com/agentlab/corag-agents/components/llm"
	"github.com/agentlab/corag-agents/tools/ragsearch"
)

// Researcher produces a candidate answer for a query.
// An empty string means no candidate was produced.
type Researcher interface {
	Research(ctx context.Context, query string) (string, error)
}

// ResearcherFunc adapts a function to Researcher
type ResearcherFunc func(ctx context.Context, query string) (string, error)

func (f ResearcherFunc) Research(ctx context.Context, query string) (string, error) {
	return f(ctx, query)
}

// AgentFactory returns a new agent with empty memory on every call
type AgentFactory func() *agents.Agent

type collaborator struct {
	factory AgentFactory
	mu      sync.Mutex
	usage   *components.LLMUsage
	logger  zerolog.Logger
}

// CollaboratorOption configures an AgentResearcher or a ModelEvaluator
type CollaboratorOption func(*collaborator)

// WithUsage accumulates model token usage of every call into usage
func WithUsage(usage *components.LLMUsage) CollaboratorOption {
	return func(c *collaborator) {
		c.usage = usage
	}
}

func WithCollaboratorLogger(l zerolog.Logger) CollaboratorOption {
	return func(c *collaborator) {
		c.logger = l
	}
}

func (c *collaborator) init(factory AgentFactory, opts ...CollaboratorOption) {
	c.factory = factory
	c.logger = zerolog.Nop()
	for _, opt := range opts {
		opt(c)
	}
}

// run drives a fresh agent through one conversation
func (c *collaborator) run(ctx context.Context, input string) (string, error) {
	agent := c.factory()
	resp := new(components.LLMResponse)
	out, err := agent.Run(ctx, input, resp)
	if c.usage != nil {
		c.mu.Lock()
		c.usage.Merge(resp.Usage)
		c.mu.Unlock()
	}
	return out, err
}

// AgentResearcher answers with a new tool calling agent per call, so no attempt sees another attempt's history
type AgentResearcher struct {
	collaborator
}

var _ Researcher = (*AgentResearcher)(nil)

func NewAgentResearcher(factory AgentFactory, opts ...CollaboratorOption) *AgentResearcher {
	ret := new(AgentResearcher)
	ret.init(factory, opts...)
	return ret
}

// Research returns the trimmed synthesis of a fresh agent.
// Running out of tool rounds yields no candidate rather than an error.
func (r *AgentResearcher) Research(ctx context.Context, query string) (string, error) {
	out, err := r.run(ctx, query)
	if errors.Is(err, agents.ErrMaxToolRounds) {
		r.logger.Warn().Err(err).Msg("researcher gave up")
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ResearchAgentFactory returns a factory of research agents searching through retriever
func ResearchAgentFactory(client llm.Client, retriever ragsearch.Retriever, opts ...agents.Option) AgentFactory {
	return func() *agents.Agent {
		options := append([]agents.Option{
			agents.WithName("researcher"),
			agents.WithClient(client),
			agents.WithSystemPromptGenerator(ResearcherPrompt()),
			agents.WithTools(ragsearch.New(retriever)),
		}, opts...)
		return agents.NewAgent(options...)
	}
}
