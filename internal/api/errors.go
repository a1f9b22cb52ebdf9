package api

import (
	"errors"
	"fmt"
)

// Validation sentinels returned before any request is issued.
var (
	ErrEmptyQuery   = errors.New("query must not be empty")
	ErrEmptyText    = errors.New("text must not be empty")
	ErrNoImage      = errors.New("no image file provided")
	ErrEmptyBaseURL = errors.New("API base URL must be a non-empty string")
)

// Error is a normalized backend failure: a non-2xx response or an explicit
// success=false envelope. Message carries the server-provided error text when
// the response included one.
type Error struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (HTTP %d)", e.StatusCode)
}

// AsError extracts an *Error from an error chain, if present.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
