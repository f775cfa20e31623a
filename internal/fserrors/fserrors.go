// Package fserrors defines the error taxonomy shared by every core
// component (path resolution, walking, reading, searching, mutation) so
// the tool dispatcher can surface a stable category tag to RPC clients.
package fserrors

import (
	"errors"
	"fmt"
)

// Code is a user-visible failure category.
type Code string

const (
	InvalidArgument        Code = "InvalidArgument"
	RootEscapesRepository  Code = "RootEscapesRepository"
	NotInsideGitRepository Code = "NotInsideGitRepository"
	NotFound               Code = "NotFound"
	NotAFile               Code = "NotAFile"
	NotADirectory          Code = "NotADirectory"
	AlreadyExists          Code = "AlreadyExists"
	ParentMissing          Code = "ParentMissing"
	NonUtf8Content         Code = "NonUtf8Content"
	InvalidRegex           Code = "InvalidRegex"
	IoError                Code = "IoError"
	Cancelled              Code = "Cancelled"
)

// Error is the concrete error type every core package returns. Callers
// that only care about the category use CodeOf; callers that want the
// underlying OS error use errors.Unwrap/errors.As.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with no wrapped cause.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around an underlying OS/library error.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the category tag from err, if any.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// Is reports whether err carries the given category.
func Is(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
