package duplexchan

import (
	"errors"
	"fmt"

	"github.com/colebennett/duplexchan/code"
)

// Error is the concrete error type raised on the byte path of a Channel.
// It follows the shape of bitbucket.org/creachadair/jrpc2's *Error: a
// category code plus a message, with an optional wrapped cause so
// errors.Is/errors.As keep working across the boundary.
type Error struct {
	Kind    code.Kind
	Message string

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap supports errors.Is/errors.As against the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Code implements code.Coder.
func (e *Error) Code() code.Kind { return e.Kind }

// errorf constructs an *Error with a formatted message and an optional
// wrapped cause.
func errorf(kind code.Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// ErrChannelClosed is returned by SendBytes and SendEncoded when the
// channel has closed, or is in the process of closing.
var ErrChannelClosed = &Error{Kind: code.ChannelClosed, Message: "channel is closed"}

// IsChannelClosed reports whether err indicates the channel was closed,
// per code.ChannelClosed.
func IsChannelClosed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == code.ChannelClosed
}
