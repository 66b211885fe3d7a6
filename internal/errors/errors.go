package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common error types for the onboarding server
var (
	// Session errors
	ErrNoSession       = errors.New("no active session")
	ErrSessionConsumed = errors.New("session already completed")

	// Wizard errors
	ErrStepOutOfRange  = errors.New("step out of range")
	ErrForwardJump     = errors.New("cannot jump ahead of current step")
	ErrAlreadyAtStart  = errors.New("already at the first step")
	ErrNotTerminalStep = errors.New("not at the final step")

	// Pipeline errors
	ErrPipelineBusy      = errors.New("collection already in progress")
	ErrPipelineCancelled = errors.New("collection cancelled")

	// Lookup errors
	ErrInvalidSIREN    = errors.New("invalid SIREN")
	ErrCompanyNotFound = errors.New("company not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// ValidationError reports a step-gating failure. It is recoverable locally:
// the wizard stays on the current step and the caller surfaces the
// missing-field list.
type ValidationError struct {
	Step    string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %q is missing required fields: %s", e.Step, strings.Join(e.Missing, ", "))
}

// NewValidationError creates a ValidationError for a step and its missing fields
func NewValidationError(step string, missing ...string) *ValidationError {
	return &ValidationError{Step: step, Missing: missing}
}

// PersistenceError reports a storage read/write failure. It is fatal for the
// current operation; the caller may retry the same mutation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// NewPersistenceError wraps a storage error with the operation that failed
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// StageFailedError reports a collection stage that exhausted its single
// retry. The in-flight pipeline run aborts; collected data stays unset and a
// re-invocation restarts from the first stage.
type StageFailedError struct {
	Stage string
	Err   error
}

func (e *StageFailedError) Error() string {
	return fmt.Sprintf("collection stage %q failed after retry: %v", e.Stage, e.Err)
}

func (e *StageFailedError) Unwrap() error { return e.Err }

// NewStageFailedError wraps the last attempt's error with the stage name
func NewStageFailedError(stage string, err error) *StageFailedError {
	return &StageFailedError{Stage: stage, Err: err}
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
