package apperrors

import (
	"errors"
	"fmt"
)

// AppError carries the HTTP status a failure class maps to.
// Services return these; the fiber error handler translates them.
type AppError struct {
	Code    int
	Kind    string
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func New(code int, kind, message string) *AppError {
	return &AppError{Code: code, Kind: kind, Message: message}
}

func Wrap(base *AppError, cause error) *AppError {
	return &AppError{Code: base.Code, Kind: base.Kind, Message: base.Message, cause: cause}
}

// WithMessage keeps the class of base but replaces the user-facing message,
// e.g. to forward an upstream unavailability reason.
func WithMessage(base *AppError, message string) *AppError {
	return &AppError{Code: base.Code, Kind: base.Kind, Message: message}
}

var (
	ErrInvalidInput     = New(400, "INVALID_INPUT", "invalid input")
	ErrNotAuthenticated = New(401, "NOT_AUTHENTICATED", "not authenticated")
	ErrNoteNotFound     = New(404, "NOT_FOUND", "note not found")
	ErrStore            = New(500, "STORE_ERROR", "storage operation failed")
	ErrSummarization    = New(500, "SUMMARIZATION_FAILED", "failed to summarize text")
	ErrModelUnavailable = New(503, "SERVICE_UNAVAILABLE", "summarization service unavailable")
)

// As unwraps err into an *AppError if it is one (possibly wrapped).
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func Is(err error, base *AppError) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == base.Kind
}
