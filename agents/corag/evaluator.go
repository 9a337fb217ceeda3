package corag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agentlab/corag-agents/agents"
	"github.com/agentlab/corag-agents/components/llm"
	"github.com/agentlab/corag-agents/tools"
)

// Evaluation is the judge's verdict on a candidate answer
type Evaluation struct {
	Verdict bool   `json:"fully_answered"`
	Reason  string `json:"reason"`
}

// Evaluator judges whether answer fully answers query
type Evaluator interface {
	Evaluate(ctx context.Context, query, answer string) (Evaluation, error)
}

// EvaluatorFunc adapts a function to Evaluator
type EvaluatorFunc func(ctx context.Context, query, answer string) (Evaluation, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, query, answer string) (Evaluation, error) {
	return f(ctx, query, answer)
}

// ModelEvaluator asks a language model for a JSON verdict
type ModelEvaluator struct {
	collaborator
}

var _ Evaluator = (*ModelEvaluator)(nil)

func NewModelEvaluator(factory AgentFactory, opts ...CollaboratorOption) *ModelEvaluator {
	ret := new(ModelEvaluator)
	ret.init(factory, opts...)
	return ret
}

// Evaluate returns a rejection when the model output cannot be parsed
func (e *ModelEvaluator) Evaluate(ctx context.Context, query, answer string) (Evaluation, error) {
	out, err := e.run(ctx, EvaluationInput(query, answer))
	if err != nil {
		return Evaluation{}, err
	}
	evaluation, err := ParseEvaluation(out)
	if err != nil {
		e.logger.Warn().Err(err).Str("raw", out).Msg("malformed evaluation")
		return Evaluation{Verdict: false, Reason: "malformed evaluation: " + err.Error()}, nil
	}
	return evaluation, nil
}

// EvaluatorAgentFactory returns a factory of JSON mode judge agents
func EvaluatorAgentFactory(client llm.Client, opts ...agents.Option) AgentFactory {
	return func() *agents.Agent {
		options := append([]agents.Option{
			agents.WithName("evaluator"),
			agents.WithClient(client),
			agents.WithSystemPromptGenerator(EvaluatorPrompt()),
			agents.WithJSONMode(true),
		}, opts...)
		return agents.NewAgent(options...)
	}
}

var errNoJSONObject = errors.New("no JSON object found")

type evaluationPayload struct {
	FullyAnswered *bool  `json:"fully_answered" validate:"required"`
	Reason        string `json:"reason"`
}

// ParseEvaluation decodes a judge reply. The JSON object may be wrapped in a code fence or prose.
func ParseEvaluation(raw string) (Evaluation, error) {
	body, err := extractJSONObject(raw)
	if err != nil {
		return Evaluation{}, err
	}
	var payload evaluationPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return Evaluation{}, fmt.Errorf("decode: %w", err)
	}
	if err := tools.Validator().Struct(&payload); err != nil {
		return Evaluation{}, errors.New("fully_answered is missing")
	}
	return Evaluation{
		Verdict: *payload.FullyAnswered,
		Reason:  strings.TrimSpace(payload.Reason),
	}, nil
}

func extractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return "", errNoJSONObject
	}
	return raw[start : end+1], nil
}
