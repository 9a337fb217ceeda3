package agents

import (
	"github.com/rs/zerolog"

	"github.com/agentlab/corag-agents/components"
	"github.com/agentlab/corag-agents/components/llm"
	"github.com/agentlab/corag-agents/components/systemprompt"
	"github.com/agentlab/corag-agents/tools"
)

type Option func(a *Config)

func WithClient(clt llm.Client) Option {
	return func(c *Config) {
		c.client = clt
	}
}

func WithMemory(m *components.Memory) Option {
	return func(c *Config) {
		c.memory = m
	}
}

func WithSystemPromptGenerator(g systemprompt.Generator) Option {
	return func(c *Config) {
		c.systemPromptGenerator = g
	}
}

// WithTools registers tools the model may call
func WithTools(list ...tools.Tool) Option {
	return func(c *Config) {
		if c.tools == nil {
			c.tools = tools.NewRegistry()
		}
		c.tools.Register(list...)
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithTemperature(temperature float32) Option {
	return func(c *Config) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.maxTokens = maxTokens
	}
}

func WithMaxToolRounds(rounds int) Option {
	return func(c *Config) {
		c.maxToolRounds = rounds
	}
}

func WithJSONMode(enabled bool) Option {
	return func(c *Config) {
		c.jsonMode = enabled
	}
}

func WithName(name string) Option {
	return func(c *Config) {
		c.name = name
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}
