package errors

import (
	"fmt"
)

// ParseError represents a configuration decoding failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration and request validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StoreError reports a failed selection store operation for a named calendar.
type StoreError struct {
	Calendar string
	Op       string
	Err      error
}

// NewStoreError constructs a StoreError.
func NewStoreError(calendar, op string, err error) error {
	return &StoreError{Calendar: calendar, Op: op, Err: err}
}

func (e *StoreError) Error() string {
	if e == nil {
		return ""
	}
	if e.Calendar != "" {
		return fmt.Sprintf("store error: %s calendar %q: %v", e.Op, e.Calendar, e.Err)
	}
	return fmt.Sprintf("store error: %s: %v", e.Op, e.Err)
}

// Unwrap exposes the root error.
func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TokenError indicates a selection state token that cannot be trusted or decoded.
type TokenError struct {
	Reason string
	Err    error
}

// NewTokenError constructs a TokenError with the given reason.
func NewTokenError(reason string, err error) error {
	return &TokenError{Reason: reason, Err: err}
}

func (e *TokenError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("token error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("token error: %s", e.Reason)
}

// Unwrap exposes the underlying error.
func (e *TokenError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
