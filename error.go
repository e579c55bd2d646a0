package visiontech

import (
	"bytes"
	"errors"
	"fmt"
)

// Error codes map one-to-one onto HTTP status classes at the boundary.
const (
	ErrInvalid      = "invalid"
	ErrUnauthorized = "unauthorized"
	ErrNotFound     = "not_found"
	ErrConflict     = "conflict"
	ErrInternal     = "internal"
)

// Error is the application error type. Code classifies the failure, Message
// is safe to show to a caller, Op names the failing operation, Err is the
// wrapped cause.
type Error struct {
	Code    string
	Message string
	Op      string
	Err     error
}

// ErrorCode returns the code of the first *Error in the chain, or internal.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}

	return ErrInternal
}

// ErrorMessage returns the caller-facing message of the first *Error in the
// chain, or a generic one.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}

	return "An internal error has occurred."
}

func (e *Error) Error() string {
	var buf bytes.Buffer

	if e.Op != "" {
		fmt.Fprintf(&buf, "%s: ", e.Op)
	}

	if e.Err != nil {
		buf.WriteString(e.Err.Error())
	} else {
		if e.Code != "" {
			fmt.Fprintf(&buf, "<%s> ", e.Code)
		}
		buf.WriteString(e.Message)
	}

	return buf.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
