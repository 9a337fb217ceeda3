package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentlab/corag-agents/components"
	"github.com/agentlab/corag-agents/components/llm"
	"github.com/agentlab/corag-agents/components/systemprompt"
	"github.com/agentlab/corag-agents/components/systemprompt/cot"
	"github.com/agentlab/corag-agents/tools"
)

// DefaultMaxToolRounds bounds how many times a single Run executes tool calls
const DefaultMaxToolRounds = 5

var (
	// ErrMaxToolRounds is returned when the model keeps requesting tools past the round limit
	ErrMaxToolRounds = errors.New("agent: tool round limit exceeded")
	ErrNoClient      = errors.New("agent: no llm client configured")
)

// Config represents general agents configuration
type Config struct {
	// client Client for interacting with the language model
	client llm.Client
	//	memory  Memory component for storing chat history.
	memory *components.Memory
	//	systemPromptGenerator Component for generating system prompts.
	systemPromptGenerator systemprompt.Generator
	// tools the model may call
	tools *tools.Registry
	// model llm model
	model string
	// temperature Temperature for response generation, typically ranging from 0 to 1.
	temperature float32
	// maxTokens Maximum number of tokens allowed in the response
	maxTokens int
	// maxToolRounds bounds tool execution rounds per Run
	maxToolRounds int
	// jsonMode asks the model for a single JSON object
	jsonMode bool
	// name is Agent name presentation
	name   string
	logger zerolog.Logger
}

// Agent is a tool calling chat agent.
// Run sends the conversation to the model, executes the tools it asks for and feeds the
// results back until the model answers without tool calls.
type Agent struct {
	Config
	startHook func(context.Context, *Agent, string)
	endHook   func(context.Context, *Agent, string, string, *components.LLMResponse)
	errorHook func(context.Context, *Agent, string, *components.LLMResponse, error)
	toolHook  func(context.Context, *Agent, components.ToolCall, string, error)
}

// NewAgent initializes the Agent
func NewAgent(options ...Option) *Agent {
	ret := &Agent{
		Config: Config{
			logger: zerolog.Nop(),
		},
	}
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.memory == nil {
		ret.memory = components.NewMemory(0)
	}
	if ret.systemPromptGenerator == nil {
		ret.systemPromptGenerator = cot.New()
	}
	if ret.tools == nil {
		ret.tools = tools.NewRegistry()
	}
	if ret.maxToolRounds <= 0 {
		ret.maxToolRounds = DefaultMaxToolRounds
	}
	return ret
}

// ResetMemory resets the memory to its initial state
func (a *Agent) ResetMemory() {
	a.memory.Reset()
}

func (a *Agent) Memory() *components.Memory {
	return a.memory
}

func (a *Agent) Tools() *tools.Registry {
	return a.tools
}

func (a *Agent) SetClient(clt llm.Client) {
	a.client = clt
}

func (a *Agent) SetMemory(m *components.Memory) {
	a.memory = m
}

func (a *Agent) SetSystemPromptGenerator(g systemprompt.Generator) {
	a.systemPromptGenerator = g
}

func (a *Agent) SetModel(model string) {
	a.model = model
}

func (a *Agent) SetTemperature(temperature float32) {
	a.temperature = temperature
}

func (a *Agent) SetMaxTokens(maxTokens int) {
	a.maxTokens = maxTokens
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) SetName(name string) {
	a.name = name
}

func (a *Agent) SetStartHook(fn func(context.Context, *Agent, string)) {
	a.startHook = fn
}

func (a *Agent) SetEndHook(fn func(context.Context, *Agent, string, string, *components.LLMResponse)) {
	a.endHook = fn
}

func (a *Agent) SetErrorHook(fn func(context.Context, *Agent, string, *components.LLMResponse, error)) {
	a.errorHook = fn
}

// SetToolHook is called after every tool execution with the call, its output and error
func (a *Agent) SetToolHook(fn func(context.Context, *Agent, components.ToolCall, string, error)) {
	a.toolHook = fn
}

// response obtains one reply from the language model
func (a *Agent) response(ctx context.Context, llmResp *components.LLMResponse) (*components.Message, error) {
	req := &llm.Request{
		Model:       a.model,
		System:      a.systemPromptGenerator.Generate(),
		Messages:    a.memory.History(),
		Tools:       a.tools.Definitions(),
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
		JSONMode:    a.jsonMode,
	}
	return a.client.Chat(ctx, req, llmResp)
}

// Run runs the agent with the given user input and returns the final answer text.
// An empty input continues the conversation already in memory.
func (a *Agent) Run(ctx context.Context, userInput string, llmResp *components.LLMResponse) (string, error) {
	if fn := a.startHook; fn != nil {
		fn(ctx, a, userInput)
	}
	answer, err := a.run(ctx, userInput, llmResp)
	if err != nil {
		if fn := a.errorHook; fn != nil {
			fn(ctx, a, userInput, llmResp, err)
		}
		return "", err
	}
	if fn := a.endHook; fn != nil {
		fn(ctx, a, userInput, answer, llmResp)
	}
	return answer, nil
}

func (a *Agent) run(ctx context.Context, userInput string, llmResp *components.LLMResponse) (string, error) {
	if a.client == nil {
		return "", ErrNoClient
	}
	if userInput != "" {
		a.memory.NewTurn()
		a.memory.NewMessage(components.UserRole, userInput)
	}
	for round := 0; ; round++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		reply, err := a.response(ctx, llmResp)
		if err != nil {
			return "", err
		}
		a.memory.Append(reply)
		calls := reply.ToolCalls()
		if len(calls) == 0 {
			return strings.TrimSpace(reply.Content()), nil
		}
		if round >= a.maxToolRounds {
			return "", fmt.Errorf("%w: %d rounds", ErrMaxToolRounds, a.maxToolRounds)
		}
		for _, call := range calls {
			a.memory.Append(a.callTool(ctx, call))
		}
	}
}

// callTool runs one tool call. Failures are reported back to the model as the tool result.
func (a *Agent) callTool(ctx context.Context, call components.ToolCall) *components.Message {
	a.logger.Debug().Str("agent", a.name).Str("tool", call.Name).Str("args", call.Arguments).Msg("tool call")
	out, err := a.tools.Call(ctx, call)
	if fn := a.toolHook; fn != nil {
		fn(ctx, a, call, out, err)
	}
	if err != nil {
		a.logger.Warn().Err(err).Str("agent", a.name).Str("tool", call.Name).Msg("tool failed")
		return components.NewToolMessage(call.ID, "error: "+err.Error(), true)
	}
	return components.NewToolMessage(call.ID, out, false)
}

// SystemPromptContextProvider returns agent systemPromptGenerator's context provider
func (a *Agent) SystemPromptContextProvider(title string) (systemprompt.ContextProvider, error) {
	return a.systemPromptGenerator.ContextProvider(title)
}

// RegisterSystemPromptContextProvider registers a new context provider
func (a *Agent) RegisterSystemPromptContextProvider(provider systemprompt.ContextProvider) {
	a.systemPromptGenerator.AddContextProviders(provider)
}

// UnregisterSystemPromptContextProvider Unregisters an existing context provider.
func (a *Agent) UnregisterSystemPromptContextProvider(title string) {
	a.systemPromptGenerator.RemoveContextProviders(title)
}

// SystemPrompt returns the system prompt
func (a *Agent) SystemPrompt() string {
	return a.systemPromptGenerator.Generate()
}
