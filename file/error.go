package file

import "fmt"

// Error is the single error type this module returns. Every check the
// lifetime pass performs fails with one of these, wrapped at the
// offending node's source range.
type Error struct {
	Location Location
	Message  string
	Prev     error
}

func (e *Error) Error() string {
	if e.Prev != nil {
		return fmt.Sprintf("%s: %s\n%s", e.Location, e.Message, e.Prev.Error())
	}
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Prev
}

// Bind attaches the original source text so the message can show the
// offending snippet. It returns e so call sites can chain it directly
// into a return statement.
func (e *Error) Bind(source string) *Error {
	if e == nil {
		return nil
	}
	snippet := e.Location.Snippet(source)
	if snippet == "" {
		return e
	}
	e.Message = fmt.Sprintf("%s (%q)", e.Message, snippet)
	return e
}

// Wrap attributes err to loc: an err that already is an *Error is
// returned unchanged, and any other error becomes a new Error at loc
// carrying err's message. A nil err yields nil.
func Wrap(loc Location, err error) *Error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*Error); ok {
		return fe
	}
	return &Error{Location: loc, Message: err.Error()}
}

// NewError builds an Error directly from a message, used by callers
// which already hold the offending location.
func NewError(loc Location, format string, args ...any) *Error {
	return &Error{Location: loc, Message: fmt.Sprintf(format, args...)}
}
