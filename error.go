package pagelens

import (
	"context"
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFIG    = "config"
	EFETCH     = "fetch"
	EINTERNAL  = "internal"
	EINVALID   = "invalid"
	ELLM       = "llm"
	ENOCONTENT = "no_content"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string

	// Underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pagelens error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message. A %w verb in format sets the underlying cause.
func Errorf(code string, format string, args ...any) *Error {
	err := fmt.Errorf(format, args...)
	return &Error{
		Code:    code,
		Message: err.Error(),
		Err:     errors.Unwrap(err),
	}
}

// UserMessage returns the message shown to end users for err.
func UserMessage(err error) string {
	switch ErrorCode(err) {
	case "":
		return ""
	case EFETCH:
		return "Could not retrieve site content."
	case ENOCONTENT:
		return "Could not extract content from the site."
	case ELLM:
		return "The analysis service failed to respond. Please try again later."
	case ECONFIG:
		return "The service is not configured."
	case EINVALID:
		return ErrorMessage(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The analysis took too long. Please try again later."
	}
	return "An unexpected error occurred during analysis."
}
