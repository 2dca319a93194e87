package recovery

import (
	"errors"
	"fmt"
)

// UserMessage is the fixed, non-technical text shown when recovery fails.
const UserMessage = "I'm sorry, I couldn't generate a valid response. Please try again with more specific details."

// FailureKind classifies why an attempt produced no document.
type FailureKind string

const (
	FailureEmptyGeneration FailureKind = "empty_generation"
	FailureUnparsable      FailureKind = "unparsable"
	FailureInvalidSchema   FailureKind = "invalid_schema"
)

// EmptyGenerationError means the generator returned nothing usable: blank
// text, a generator error, or an attempt timeout.
type EmptyGenerationError struct {
	Err error
}

func (e *EmptyGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("empty generation: %v", e.Err)
	}
	return "empty generation"
}

func (e *EmptyGenerationError) Unwrap() error { return e.Err }

// UnparsableOutputError means no JSON object could be located in the text.
type UnparsableOutputError struct {
	Preview string
}

func (e *UnparsableOutputError) Error() string {
	return fmt.Sprintf("no JSON object found in output %q", e.Preview)
}

// SchemaValidationError means an object was found but has the wrong shape.
type SchemaValidationError struct {
	Shape  Shape
	Field  string
	Reason string
	Err    error
}

func (e *SchemaValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s document: %s", e.Shape, e.Reason)
	}
	return fmt.Sprintf("%s document: field %q %s", e.Shape, e.Field, e.Reason)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }

// RetryExhaustedError is the only error Recover surfaces. Last is the
// failure kind of the final attempt; Err is its underlying error.
type RetryExhaustedError struct {
	Attempts int
	Last     FailureKind
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("recovery failed after %d attempt(s), last failure %s: %v", e.Attempts, e.Last, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Err }

// FailureReport is the user-facing form of a RetryExhaustedError.
type FailureReport struct {
	Reason  FailureKind `json:"reason"`
	Message string      `json:"message"`
}

// Report pairs the failure kind with the fixed apology.
func (e *RetryExhaustedError) Report() FailureReport {
	return FailureReport{Reason: e.Last, Message: UserMessage}
}

// KindOf maps an attempt error to its failure kind.
func KindOf(err error) FailureKind {
	var schemaErr *SchemaValidationError
	var parseErr *UnparsableOutputError
	switch {
	case errors.As(err, &schemaErr):
		return FailureInvalidSchema
	case errors.As(err, &parseErr):
		return FailureUnparsable
	default:
		return FailureEmptyGeneration
	}
}
