package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentlab/corag-agents/agents/corag"
)

func TestConsole(t *testing.T) {
	buf := new(bytes.Buffer)
	console := NewConsole(buf)
	calls := 0
	o := corag.New(
		corag.ResearcherFunc(func(context.Context, string) (string, error) {
			calls++
			if calls == 1 {
				return "", nil
			}
			return "**Final Synthesis** partial", nil
		}),
		corag.EvaluatorFunc(func(context.Context, string, string) (corag.Evaluation, error) {
			return corag.Evaluation{Verdict: false, Reason: "regions missing"}, nil
		}),
		corag.WithMaxAttempts(2),
		corag.WithObserver(console),
	)
	res, err := o.Run(context.Background(), "q")
	require.NoError(t, err)
	console.Result(res)

	out := buf.String()
	for _, want := range []string{
		"Attempt 1/2",
		"No response received from researcher.",
		"Attempt 2/2",
		"Research Result",
		"**Final Synthesis** partial",
		"Evaluating response...",
		"Evaluation: FAILED",
		"✗ regions missing",
		"Final Status: FAILED",
		"Maximum retries (2) reached without satisfactory answer.",
		"Best Effort Answer (2 attempts)",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Retrying with fresh context")
}

func TestConsolePassed(t *testing.T) {
	buf := new(bytes.Buffer)
	console := NewConsole(buf)
	console.EvaluationResult(1, corag.Evaluation{Verdict: true, Reason: "complete"})
	console.RetryPending(1, 3)
	console.Result(&corag.Result{})
	assert.Contains(t, buf.String(), "Evaluation: PASSED")
	assert.Contains(t, buf.String(), "✓ complete")
	assert.Contains(t, buf.String(), "Retrying with fresh context")
	assert.Contains(t, buf.String(), "No answer was produced.")
}
