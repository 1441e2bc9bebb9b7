// Package errors maps build failures onto exit codes.
//
// Exit code conventions:
//   - 1: Runtime errors (filesystem failures while building)
//   - 2: Validation errors (bad flags, invalid names, malformed layouts or templates)
//
// Commands classify whatever a build returned and exit with its code:
//
//	err = errors.Classify(b.Build(layout))
//	os.Exit(errors.GetExitCode(err))
package errors

import (
	"errors"
	"fmt"

	"github.com/wellmaintained/glustik/internal/layoutfile"
	"github.com/wellmaintained/glustik/pkg/scaffold"
)

// ValidationError represents a validation or usage error.
// These errors indicate improper input or configuration and should result in exit code 2.
type ValidationError struct {
	Message string
	Cause   error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap implements the error unwrapping interface for error chain inspection.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// RuntimeError represents a failure while performing filesystem effects.
// These errors should result in exit code 1.
type RuntimeError struct {
	Message string
	Cause   error
}

// Error implements the error interface for RuntimeError.
func (e *RuntimeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap implements the error unwrapping interface for error chain inspection.
func (e *RuntimeError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new ValidationError with the given message and cause.
func NewValidationError(msg string, cause error) error {
	return &ValidationError{
		Message: msg,
		Cause:   cause,
	}
}

// NewRuntimeError creates a new RuntimeError with the given message and cause.
func NewRuntimeError(msg string, cause error) error {
	return &RuntimeError{
		Message: msg,
		Cause:   cause,
	}
}

// invalidInput lists the scaffold errors caused by the layout or its
// arguments rather than by the filesystem.
var invalidInput = []error{
	scaffold.ErrInvalidName,
	scaffold.ErrInvalidLayout,
	scaffold.ErrNoHandlerForKey,
	scaffold.ErrNoHandlerForValue,
	scaffold.ErrInvalidDirsArgument,
	scaffold.ErrMissingPlaceholder,
	scaffold.ErrMalformedTemplate,
	scaffold.ErrInvalidPath,
	scaffold.ErrInvalidArgument,
	scaffold.ErrPathOutsideBase,
	scaffold.ErrUnknownOperation,
	scaffold.ErrDuplicateOperation,
	layoutfile.ErrInvalidDocument,
}

// Classify wraps err as a ValidationError when it stems from invalid input
// and as a RuntimeError otherwise. Already classified errors and nil pass
// through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var validationErr *ValidationError
	var runtimeErr *RuntimeError
	if errors.As(err, &validationErr) || errors.As(err, &runtimeErr) {
		return err
	}
	for _, target := range invalidInput {
		if errors.Is(err, target) {
			return NewValidationError("invalid layout", err)
		}
	}
	return NewRuntimeError("build failed", err)
}

// GetExitCode extracts the appropriate exit code from an error.
// Returns:
//   - 2 for ValidationError
//   - 1 for RuntimeError
//   - 1 for unknown errors
func GetExitCode(err error) int {
	var validationErr *ValidationError

	if errors.As(err, &validationErr) {
		return 2
	}
	return 1
}
