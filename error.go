package draftpipe

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and they map well to HTTP status codes and
// to the pipeline's retry decision (see Retryable).
const (
	EINVALID       = "invalid"       // malformed input, disallowed target, missing config
	ENOTFOUND      = "not_found"     // entity does not exist
	ETIMEOUT       = "timeout"       // upstream did not answer in time
	EUNAUTHORIZED  = "unauthorized"  // backend rejected our credentials
	EUNAVAILABLE   = "unavailable"   // transport failure or upstream error response
	EUNPROCESSABLE = "unprocessable" // content too degenerate to work with
	EINTERNAL      = "internal"      // anything we didn't anticipate
)

// Error represents an application-specific error. Errors carry a machine
// readable code and a human readable message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("draftpipe error: code=%s message=%s", e.Code, e.Message)
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
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Retryable reports whether retrying the operation that produced err could
// plausibly succeed. Input errors, auth failures and content-quality
// failures are final; timeouts and upstream hiccups are not.
func Retryable(err error) bool {
	switch ErrorCode(err) {
	case EINVALID, ENOTFOUND, EUNAUTHORIZED, EUNPROCESSABLE:
		return false
	default:
		return true
	}
}
