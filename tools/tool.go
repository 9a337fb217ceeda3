package tools

import (
	"context"

	"github.com/agentlab/corag-agents/components"
)

// Tool is a function the model can call by name with JSON arguments
type Tool interface {
	Title() string
	Description() string
	Definition() components.ToolDefinition
	// Call runs the tool with raw JSON arguments and returns the text handed back to the model
	Call(ctx context.Context, arguments string) (string, error)
}
