package crispe

import (
	"fmt"

	"github.com/agentlab/corag-agents/components/systemprompt"
)

// Generator is CRISPE system prompt generator
type Generator struct {
	systemprompt.BaseGenerator
	// capacities Capacity and Role
	capacities []string
	// background agent role background
	background []string
	// statements represents the task of the agent
	statements []string
	// personalities represents the response style
	personalities []string
	// experiments represents the suggested questions by ai for user to choose for better response if needed
	experiments []string
}

var _ systemprompt.Generator = (*Generator)(nil)

var sectionTitles = []string{
	"CAPACITY and ROLE",
	"INSIGHT and PURPOSE",
	"STATEMENT and TASK",
	"PERSONALITY and OUTPUT INSTRUCTIONS",
	"INSTRUCTIONS for FOLLOWUP QUESTIONS",
}

// New returns a new system prompt Generator
func New(options ...Option) *Generator {
	ret := new(Generator)
	for _, opt := range options {
		opt(ret)
	}
	if len(ret.background) == 0 {
		ret.background = []string{"- This is a conversation with a helpful and friendly AI assistant."}
	}
	if len(ret.ContextProviders()) > 0 {
		ret.personalities = append(ret.personalities, "- Always use the available additional information and context to enhance the response.")
	}
	return ret
}

func (g *Generator) Generate() string {
	sections := [][]string{g.capacities, g.background, g.statements, g.personalities, g.experiments}
	var parts []string
	for i, content := range sections {
		if len(content) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("# %s", sectionTitles[i]))
		parts = append(parts, content...)
		parts = append(parts, "")
	}
	parts = append(parts, g.RenderContext()...)
	return systemprompt.Join(parts)
}
