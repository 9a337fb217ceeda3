// Package render prints orchestrator progress as terminal panels.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentlab/corag-agents/agents/corag"
)

var (
	colorInfo    = lipgloss.Color("39")
	colorSuccess = lipgloss.Color("42")
	colorWarning = lipgloss.Color("220")
	colorError   = lipgloss.Color("196")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInfo)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)
)

// Console renders orchestrator events to w
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

var _ corag.Observer = (*Console)(nil)

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) println(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, s)
}

// Panel renders body in a bordered box under a colored title
func Panel(title, body string, color lipgloss.Color) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Foreground(color).Render(title),
		boxStyle.BorderForeground(color).Render(strings.TrimSpace(body)),
	)
}

func (c *Console) AttemptStarted(index, max int) {
	c.println("\n" + headerStyle.Render(fmt.Sprintf("Attempt %d/%d", index, max)))
}

func (c *Console) ResultProduced(_ int, text string) {
	c.println(Panel("Research Result", text, colorSuccess))
	c.println("\n" + warningStyle.Bold(true).Render("Evaluating response..."))
}

func (c *Console) EvaluationResult(_ int, evaluation corag.Evaluation) {
	if evaluation.Verdict {
		c.println(Panel("Evaluation: PASSED", "✓ "+evaluation.Reason, colorSuccess))
		return
	}
	c.println(Panel("Evaluation: FAILED", "✗ "+evaluation.Reason, colorError))
}

func (c *Console) RetryPending(int, int) {
	c.println("\n" + warningStyle.Render("Response incomplete. Retrying with fresh context..."))
}

func (c *Console) AttemptFailed(index int, err error) {
	if errors.Is(err, corag.ErrNoCandidate) {
		c.println(errorStyle.Render("No response received from researcher."))
		return
	}
	c.println(errorStyle.Render(fmt.Sprintf("Attempt %d failed: %v", index, err)))
}

func (c *Console) Exhausted(max int) {
	c.println(Panel("Final Status: FAILED", fmt.Sprintf("Maximum retries (%d) reached without satisfactory answer.", max), colorError))
}

// Result prints the final answer of a run
func (c *Console) Result(res *corag.Result) {
	if res.Answer == "" {
		c.println(errorStyle.Render("No answer was produced."))
		return
	}
	title := fmt.Sprintf("Final Answer (%d attempts)", res.Attempts)
	color := colorSuccess
	if !res.Success {
		title = fmt.Sprintf("Best Effort Answer (%d attempts)", res.Attempts)
		color = colorWarning
	}
	c.println(Panel(title, res.Answer, color))
}

// Message prints a plain titled panel
func (c *Console) Message(title, body string) {
	c.println(Panel(title, body, colorInfo))
}

// Error prints err in red
func (c *Console) Error(err error) {
	c.println(errorStyle.Render("Error: " + err.Error()))
}
