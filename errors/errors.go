package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another *AppError by code, so errors.Is(err, NotFound("")) works.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !stderrors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Common Error Constructors ---

// NotFound creates an error for a selection that matched nothing.
func NotFound(operation string) *AppError {
	e := &AppError{Code: ErrCodeNotFound, Message: "sequence contains no matching element"}
	if operation != "" {
		e.WithDetail("operation", operation)
	}
	return e
}

// MultipleMatches creates an error for a selection that matched more than once.
func MultipleMatches(operation string) *AppError {
	e := &AppError{Code: ErrCodeMultipleMatches, Message: "sequence contains more than one matching element"}
	if operation != "" {
		e.WithDetail("operation", operation)
	}
	return e
}

// InvalidSortKey creates an error for a key that cannot order elements.
func InvalidSortKey(key, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidSortKey,
		Message: fmt.Sprintf("cannot sort by %q: %s", key, reason),
		Details: map[string]any{"key": key},
	}
}

// InvalidInput creates an error for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason), Details: details}
}

// Validation creates an error for struct validation failures.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// DuplicateID creates an error for a repeated record identifier.
func DuplicateID(id any) *AppError {
	return &AppError{
		Code:    ErrCodeDuplicateID,
		Message: fmt.Sprintf("duplicate id %v", id),
		Details: map[string]any{"id": id},
	}
}

// SeedUnavailable creates an error for a seed source that could not be read.
func SeedUnavailable(source string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeSeedUnavailable,
		Message: fmt.Sprintf("unable to load seed from %s", source),
		Details: map[string]any{"source": source},
		Cause:   cause,
	}
}

// Internal creates an error for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: "an unexpected error occurred", Cause: cause}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
