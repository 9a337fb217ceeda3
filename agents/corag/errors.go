package corag

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuery          = errors.New("corag: query is empty")
	ErrInvalidMaxAttempts  = errors.New("corag: max attempts must be at least 1")
	ErrMissingCollaborator = errors.New("corag: researcher and evaluator are required")
	// ErrNoCandidate is reported when the researcher returns an empty answer
	ErrNoCandidate = errors.New("corag: researcher produced no candidate")
)

// Role names the collaborator a fault came from
type Role string

const (
	RoleResearcher   Role = "researcher"
	RoleEvaluator    Role = "evaluator"
	RoleOrchestrator Role = "orchestrator"
)

// FaultError is a collaborator failure that ended a run
type FaultError struct {
	Attempt int
	Role    Role
	Err     error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("corag: attempt %d: %s: %v", e.Attempt, e.Role, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// FaultPolicy decides what a collaborator error does to the run
type FaultPolicy int

const (
	// FaultAbort returns the first collaborator error to the caller
	FaultAbort FaultPolicy = iota
	// FaultContinue counts the error as a failed attempt and keeps going
	FaultContinue
)

func (p FaultPolicy) String() string {
	switch p {
	case FaultAbort:
		return "abort"
	case FaultContinue:
		return "continue"
	}
	return fmt.Sprintf("FaultPolicy(%d)", int(p))
}

// ParseFaultPolicy maps "abort" and "continue" to a FaultPolicy
func ParseFaultPolicy(s string) (FaultPolicy, error) {
	switch s {
	case "", "abort":
		return FaultAbort, nil
	case "continue":
		return FaultContinue, nil
	}
	return FaultAbort, fmt.Errorf("corag: unknown fault policy %q", s)
}
