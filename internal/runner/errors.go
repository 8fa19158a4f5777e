package runner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGenerations indicates a negative generation count.
	ErrInvalidGenerations = errors.New("runner: generations must not be negative")

	// ErrRuleFailed indicates the transition rule panicked during a step.
	ErrRuleFailed = errors.New("runner: transition rule failed")

	// ErrDiscarded indicates Run was called after a failed step.
	ErrDiscarded = errors.New("runner: simulation state is unspecified after a failed step")
)

// StepError wraps a rule failure with the generation being computed.
type StepError struct {
	Generation int
	Panic      any
	Wrapped    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("generation %d: %v: %v", e.Generation, e.Wrapped, e.Panic)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
