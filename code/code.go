// Package code defines the error category values used by duplexchan,
// following the shape of bitbucket.org/creachadair/jrpc2/code: a small
// integer-backed enum with a String method and a Coder interface so any
// error type can report which category it belongs to.
package code

import "fmt"

// A Kind categorizes an error raised on the byte path of a Channel.
type Kind int32

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int32(k))
}

// A Coder is a value that can report the Kind of error it represents.
type Coder interface {
	Code() Kind
}

// FromError returns a Kind to categorize err. If err is a Coder, its
// reported Kind is returned; otherwise Unknown is returned. FromError
// returns NoError for a nil err.
func FromError(err error) Kind {
	if err == nil {
		return NoError
	}
	if c, ok := err.(Coder); ok {
		return c.Code()
	}
	return Unknown
}

// Pre-defined error kinds raised by the channel, pipe, and filter packages.
const (
	NoError Kind = iota
	// TransportRead is raised when the transport fails to deliver bytes.
	TransportRead
	// TransportWrite is raised when the transport fails to accept bytes.
	TransportWrite
	// ProtocolError is raised by a filter, or by exceeding MaxPackageLength.
	ProtocolError
	// OversizePackage is raised when a single package would exceed
	// MaxPackageLength before a filter could complete it. It is a subtype
	// of ProtocolError.
	OversizePackage
	// ChannelClosed is raised to callers attempting to send after the
	// channel has closed.
	ChannelClosed
	// UnhandledLoopError is logged, never returned to a caller, when a
	// panic escapes the fill, parse, or send loop.
	UnhandledLoopError
	// Unknown categorizes an error with no declared Kind.
	Unknown
)

var names = map[Kind]string{
	NoError:            "no error",
	TransportRead:      "transport read error",
	TransportWrite:     "transport write error",
	ProtocolError:      "protocol error",
	OversizePackage:    "oversize package",
	ChannelClosed:      "channel closed",
	UnhandledLoopError: "unhandled loop error",
	Unknown:            "unknown error",
}
