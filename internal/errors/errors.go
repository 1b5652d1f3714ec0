// Package errors provides centralized error definitions and error handling
// utilities for the experiment runner. It defines sentinel errors for the
// core subsystems, semantic error types, and classification helpers.
//
// Nothing in the core treats an error as process-fatal: a live session is
// never aborted over a missing collaborator. Callers log loudly and degrade
// to a no-op path instead.
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Sentinel errors returned by the experiment core.
var (
	// ErrAlreadyStarted is returned when a start trigger fires while the
	// experiment is already running.
	ErrAlreadyStarted = errors.New("experiment already started")

	// ErrNotStarted is returned when an operation requires a running experiment.
	ErrNotStarted = errors.New("experiment not started")

	// ErrPhaseNotFound is returned when a duration is requested for a phase
	// that has not been recorded.
	ErrPhaseNotFound = errors.New("phase not recorded")

	// ErrNoAdapter indicates a task-bound phase has no task adapter wired.
	// The phase resolves immediately instead of hanging the sequence.
	ErrNoAdapter = errors.New("task adapter not configured")

	// ErrNoSink indicates no marker sink is configured. Marker emission
	// degrades to a log-only path.
	ErrNoSink = errors.New("marker sink not configured")

	// ErrSequenceComplete is returned when the sequencer is ticked after
	// the final phase has finished.
	ErrSequenceComplete = errors.New("sequence already complete")
)

// NotFoundError indicates a named resource does not exist.
type NotFoundError struct {
	Resource string // e.g. "phase", "adapter"
	Name     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Name)
}

// NewNotFoundError creates a NotFoundError for the given resource and name.
func NewNotFoundError(resource, name string) *NotFoundError {
	return &NotFoundError{Resource: resource, Name: name}
}

// ValidationError indicates invalid configuration or input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound reports whether err is a NotFoundError or ErrPhaseNotFound.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrPhaseNotFound) {
		return true
	}
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
