package grading

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError with errors.Is.
	ErrValidation = errors.New("invalid analysis")
	// ErrComputation matches any *ComputationError with errors.Is.
	ErrComputation = errors.New("score computation failed")
)

// ValidationError reports a missing or malformed required field of the
// analysis. The caller supplied bad input and should not retry as is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid analysis: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ComputationError reports a broken engine invariant. It indicates a bug in
// the engine, not a problem with the input.
type ComputationError struct {
	Method Method
	Value  float64
	Reason string
}

func (e *ComputationError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("score computation failed: %s (value %v)", e.Reason, e.Value)
	}
	return fmt.Sprintf("score computation failed: %s: %s (value %v)", e.Method, e.Reason, e.Value)
}

func (e *ComputationError) Is(target error) bool { return target == ErrComputation }
