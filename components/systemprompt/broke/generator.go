package broke

import (
	"fmt"

	"github.com/agentlab/corag-agents/components/systemprompt"
)

// Generator is BROKE prompt generator
type Generator struct {
	systemprompt.BaseGenerator
	// background agent role background
	background []string
	// roles Capacity and Role
	roles []string
	// objectives represents the task of the agent
	objectives []string
	// keyResults represents the key results of the answer
	keyResults []string
	// evolves suggested optimizations for response
	evolves []string
}

var _ systemprompt.Generator = (*Generator)(nil)

var sectionTitles = []string{
	"BACKGROUND and PURPOSE",
	"CAPACITY and ROLE",
	"OBJECTIVEs and TASKs",
	"KEY RESULTS",
	"OPTIMIZATION and OUTPUT INSTRUCTIONS",
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
	ret.evolves = append(ret.evolves, "- Always use the available additional information and context to enhance the response.")
	return ret
}

func (g *Generator) Generate() string {
	sections := [][]string{g.background, g.roles, g.objectives, g.keyResults, g.evolves}
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
