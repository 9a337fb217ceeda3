// Package corag runs a research and evaluate loop: a researcher drafts an answer from a knowledge base,
// a strict evaluator judges it, and rejected drafts are retried with a fresh researcher until the
// attempt budget runs out.
package corag

import (
	"context"
	"strings"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

// NoValidResponse is the evaluation reason reported when no candidate was ever judged
const NoValidResponse = "no valid response"

// Attempt is one research and evaluate cycle. Evaluation is nil when the candidate was not judged.
type Attempt struct {
	Index      int
	Candidate  string
	Evaluation *Evaluation
}

// Result is the outcome of a run. An empty Answer means no candidate was produced.
type Result struct {
	Answer     string     `json:"answer,omitempty"`
	Attempts   int        `json:"attempts"`
	Evaluation Evaluation `json:"evaluation"`
	Success    bool       `json:"success"`
}

// Orchestrator coordinates a Researcher and an Evaluator under a bounded attempt budget
type Orchestrator struct {
	Options
	researcher Researcher
	evaluator  Evaluator
}

func New(researcher Researcher, evaluator Evaluator, opts ...Option) *Orchestrator {
	ret := &Orchestrator{
		Options: Options{
			maxAttempts: DefaultMaxAttempts,
			observer:    NopObserver{},
			logger:      zerolog.Nop(),
		},
		researcher: researcher,
		evaluator:  evaluator,
	}
	for _, opt := range opts {
		opt(&ret.Options)
	}
	if ret.observer == nil {
		ret.observer = NopObserver{}
	}
	return ret
}

func (o *Orchestrator) MaxAttempts() int {
	return o.maxAttempts
}

// Run researches query until the evaluator accepts an answer or the budget is spent.
// Exhausting the budget is not an error: the result carries Success false.
// Collaborator errors are returned as *FaultError unless the fault policy is FaultContinue.
func (o *Orchestrator) Run(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if o.maxAttempts < 1 {
		return nil, ErrInvalidMaxAttempts
	}
	if o.researcher == nil || o.evaluator == nil {
		return nil, ErrMissingCollaborator
	}
	logger := o.logger.With().Str("run", xid.New().String()).Logger()
	logger.Info().Str("query", query).Int("max_attempts", o.maxAttempts).Msg("run started")

	var (
		last           Attempt
		lastCandidate  string
		lastEvaluation = Evaluation{Verdict: false, Reason: NoValidResponse}
	)
	for last.Index < o.maxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, &FaultError{Attempt: last.Index + 1, Role: RoleOrchestrator, Err: err}
		}
		last = Attempt{Index: last.Index + 1}
		o.observer.AttemptStarted(last.Index, o.maxAttempts)

		candidate, err := o.researcher.Research(ctx, query)
		if err != nil {
			if ferr := o.fault(logger, last.Index, RoleResearcher, err); ferr != nil {
				return nil, ferr
			}
			continue
		}
		if candidate == "" {
			logger.Warn().Int("attempt", last.Index).Msg("no response from researcher")
			o.observer.AttemptFailed(last.Index, ErrNoCandidate)
			continue
		}
		last.Candidate = candidate
		lastCandidate = candidate
		o.observer.ResultProduced(last.Index, candidate)

		evaluation, err := o.evaluator.Evaluate(ctx, query, candidate)
		if err != nil {
			if ferr := o.fault(logger, last.Index, RoleEvaluator, err); ferr != nil {
				return nil, ferr
			}
			continue
		}
		last.Evaluation = &evaluation
		lastEvaluation = evaluation
		o.observer.EvaluationResult(last.Index, evaluation)
		logger.Info().Int("attempt", last.Index).Bool("fully_answered", evaluation.Verdict).Str("reason", evaluation.Reason).Msg("evaluated")

		if evaluation.Verdict {
			return &Result{
				Answer:     candidate,
				Attempts:   last.Index,
				Evaluation: evaluation,
				Success:    true,
			}, nil
		}
		if last.Index < o.maxAttempts {
			o.observer.RetryPending(last.Index, o.maxAttempts)
		}
	}

	o.observer.Exhausted(o.maxAttempts)
	logger.Warn().Int("attempts", last.Index).Msg("maximum attempts reached without satisfactory answer")
	return &Result{
		Answer:     lastCandidate,
		Attempts:   last.Index,
		Evaluation: lastEvaluation,
		Success:    false,
	}, nil
}

// fault applies the fault policy and returns the error ending the run, if any.
// A continued fault is reported like a rejected candidate: failed, then retry while budget remains.
func (o *Orchestrator) fault(logger zerolog.Logger, attempt int, role Role, err error) error {
	ferr := &FaultError{Attempt: attempt, Role: role, Err: err}
	if o.faultPolicy != FaultContinue {
		return ferr
	}
	logger.Error().Err(err).Int("attempt", attempt).Str("role", string(role)).Msg("collaborator failed")
	o.observer.AttemptFailed(attempt, ferr)
	if attempt < o.maxAttempts {
		o.observer.RetryPending(attempt, o.maxAttempts)
	}
	return nil
}
