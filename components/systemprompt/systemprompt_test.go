package systemprompt_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlab/corag-agents/components/systemprompt"
	"github.com/agentlab/corag-agents/components/systemprompt/broke"
	"github.com/agentlab/corag-agents/components/systemprompt/cot"
	"github.com/agentlab/corag-agents/components/systemprompt/crispe"
	"github.com/agentlab/corag-agents/components/systemprompt/simple"
)

func TestContextProviders(t *testing.T) {
	g := simple.New("You are a host.",
		simple.WithContextProviders(
			systemprompt.NewStaticProvider("Database", "{}"),
			systemprompt.NewStaticProvider("Database", "duplicate"),
			systemprompt.NewStaticProvider("Empty", ""),
		),
	)
	p, err := g.ContextProvider("Database")
	require.NoError(t, err)
	assert.Equal(t, "{}", p.Info())
	assert.Len(t, g.ContextProviders(), 2)
	assert.Equal(t, "You are a host.\n\n# EXTRA INFORMATION AND CONTEXT\n## Database\n{}", g.Generate())

	g.RemoveContextProviders("Database", "Empty")
	assert.Empty(t, g.ContextProviders())
	assert.Equal(t, "You are a host.", g.Generate())
	_, err = g.ContextProvider("Database")
	assert.Error(t, err)
}

func TestCRISPE(t *testing.T) {
	g := crispe.New(
		crispe.WithCapacities([]string{"- You are an assistant."}),
		crispe.WithStatements([]string{"- Answer the question."}),
		crispe.WithContextProviders(systemprompt.NewStaticProvider("Facts", "the sky is blue")),
	)
	want := `# CAPACITY and ROLE
- You are an assistant.

# INSIGHT and PURPOSE
- This is a conversation with a helpful and friendly AI assistant.

# STATEMENT and TASK
- Answer the question.

# PERSONALITY and OUTPUT INSTRUCTIONS
- Always use the available additional information and context to enhance the response.

# EXTRA INFORMATION AND CONTEXT
## Facts
the sky is blue`
	assert.Equal(t, want, g.Generate())

	plain := crispe.New(crispe.WithExperiments([]string{"- Suggest a clearer question."}))
	assert.NotContains(t, plain.Generate(), "PERSONALITY")
	assert.Contains(t, plain.Generate(), "# INSTRUCTIONS for FOLLOWUP QUESTIONS\n- Suggest a clearer question.")
}

func TestBROKE(t *testing.T) {
	g := broke.New(
		broke.WithRoles([]string{"- You are a host."}),
		broke.WithKeyResults([]string{"- Bookings are saved."}),
	)
	want := `# BACKGROUND and PURPOSE
- This is a conversation with a helpful and friendly AI assistant.

# CAPACITY and ROLE
- You are a host.

# KEY RESULTS
- Bookings are saved.

# OPTIMIZATION and OUTPUT INSTRUCTIONS
- Always use the available additional information and context to enhance the response.`
	assert.Equal(t, want, g.Generate())
}

func ExampleGenerator() {
	g := cot.New(
		cot.WithBackground([]string{"- You are a strict checker."}),
		cot.WithSteps([]string{"- Compare the answer with the query."}),
		cot.WithOutputInstructs([]string{"- Respond in JSON."}),
	)
	fmt.Println(g.Generate())
	// Output:
	// # IDENTITY and PURPOSE
	// - You are a strict checker.
	//
	// # INTERNAL ASSISTANT STEPS
	// - Compare the answer with the query.
	//
	// # OUTPUT INSTRUCTIONS
	// - Respond in JSON.
	// - Always use the available additional information and context to enhance the response.
}
