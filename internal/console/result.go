// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// ErrorKind classifies a failed command.
type ErrorKind int

const (
	UnknownProperty ErrorKind = iota // No property at that path
	UnknownCommand                   // Nothing at all at that path
	InvalidValue                     // Argument did not parse
	InvalidUsage                     // Wrong arguments for an action
	NoResults                        // A search matched nothing
	Unimplemented                    // Action has no handler
	CustomError                      // Free text, usually from a handler
)

// Error is the error type carried by a failed Result.
type Error struct {
	Kind   ErrorKind
	Detail string
}

// Sentinels for errors.Is. Only the kind is compared, so
// errors.Is(Invalid("x"), ErrInvalidValue) is true.
var (
	ErrUnknownProperty = &Error{Kind: UnknownProperty}
	ErrUnknownCommand  = &Error{Kind: UnknownCommand}
	ErrInvalidValue    = &Error{Kind: InvalidValue}
	ErrInvalidUsage    = &Error{Kind: InvalidUsage}
	ErrNoResults       = &Error{Kind: NoResults}
	ErrUnimplemented   = &Error{Kind: Unimplemented}
)

// Invalid reports an argument that could not be parsed.
func Invalid(detail string) *Error { return &Error{Kind: InvalidValue, Detail: detail} }

// Usage reports an action called with the wrong arguments; detail is the
// expected form, e.g. "find <name>".
func Usage(detail string) *Error { return &Error{Kind: InvalidUsage, Detail: detail} }

// Custom wraps arbitrary text as an error.
func Custom(text string) *Error { return &Error{Kind: CustomError, Detail: text} }

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownProperty:
		return "Unknown property"
	case UnknownCommand:
		return "Unknown command"
	case InvalidValue:
		return "Invalid value: " + e.Detail
	case InvalidUsage:
		return "Usage: " + e.Detail
	case NoResults:
		return "No results"
	case Unimplemented:
		return "Unimplemented"
	default:
		return e.Detail
	}
}

// Is matches any *Error of the same kind. Custom errors also need equal text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Kind != e.Kind {
		return false
	}
	return e.Kind != CustomError || t.Detail == e.Detail
}

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of one command: display text or an error. The zero
// Result is an empty success.
type Result struct {
	text string
	err  *Error
}

// Ok returns a successful result.
func Ok(text string) Result { return Result{text: text} }

// Okf formats a successful result.
func Okf(format string, args ...any) Result { return Result{text: fmt.Sprintf(format, args...)} }

// OkValue formats any value with its default format.
func OkValue(v any) Result { return Result{text: fmt.Sprint(v)} }

// Fail converts any error to a failed result. Errors that already are, or
// wrap, an *Error keep their kind; anything else becomes a Custom error
// carrying its message. A nil err gives an empty success.
func Fail(err error) Result {
	if err == nil {
		return Result{}
	}
	var ce *Error
	if errors.As(err, &ce) {
		return Result{err: ce}
	}
	return Result{err: Custom(err.Error())}
}

// Errorf formats a Custom error result.
func Errorf(format string, args ...any) Result {
	return Result{err: Custom(fmt.Sprintf(format, args...))}
}

// IsOK reports whether the command succeeded.
func (r Result) IsOK() bool { return r.err == nil }

// Text is the success text, empty for failures.
func (r Result) Text() string { return r.text }

// Err returns the failure, or nil. The nil is untyped so callers can test
// `res.Err() != nil` safely.
func (r Result) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Kind returns the error kind and whether the result failed.
func (r Result) Kind() (ErrorKind, bool) {
	if r.err == nil {
		return 0, false
	}
	return r.err.Kind, true
}

// String returns what the result displays as.
func (r Result) String() string {
	if r.err != nil {
		return r.err.Error()
	}
	return r.text
}
