// Package apperror defines the typed error carried through the content
// store. Every error the store records is an *AppError.
package apperror

import (
	"errors"
	"fmt"
	"maps"
)

// AppError is a classified error with optional context.
type AppError struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Context map[string]string `json:"context,omitempty"`
	Cause   error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Retryable is shorthand for e.Code.Retryable().
func (e *AppError) Retryable() bool { return e.Code.Retryable() }

// Severity is shorthand for e.Code.Severity().
func (e *AppError) Severity() Severity { return e.Code.Severity() }

// With returns a copy of e with key set in its context.
func (e *AppError) With(key, value string) *AppError {
	c := *e
	c.Context = maps.Clone(e.Context)
	if c.Context == nil {
		c.Context = make(map[string]string, 1)
	}
	c.Context[key] = value
	return &c
}

// Clone returns a copy of e with its own context map. The cause is shared.
func (e *AppError) Clone() *AppError {
	if e == nil {
		return nil
	}
	c := *e
	c.Context = maps.Clone(e.Context)
	return &c
}

// New creates an AppError with the given code and message.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError with a formatted message.
func Newf(code Code, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// WrapCode creates an AppError with the given code around cause.
func WrapCode(code Code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// NotFound reports that resource id does not exist.
func NotFound(resource, id string) *AppError {
	return Newf(CodeNotFound, "%s %s does not exist", resource, id).
		With("resource", resource).
		With("id", id)
}

// Validation reports rejected input.
func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// As returns the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// Wrap converts err into an AppError. Typed errors are returned unchanged;
// anything else becomes CodeUnknown with the original message kept in the
// context under "cause". op, if set, is recorded under "operation".
func Wrap(err error, op string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	wrapped := &AppError{
		Code:    CodeUnknown,
		Message: "unexpected error",
		Context: map[string]string{"cause": err.Error()},
		Cause:   err,
	}
	if op != "" {
		wrapped.Context["operation"] = op
	}
	return wrapped
}
