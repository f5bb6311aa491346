/*
Package duplexchan implements a pipelined duplex byte channel: it turns a
raw, ordered byte transport (a TCP connection, a pipe, anything satisfying
transport.Transport) into a lazily-produced sequence of typed packages, and
provides a facade for sending packages back the other way.

Channels

A *Channel[P] is built with NewChannel, given a transport, an initial
protocol filter, and Options. Calling Run starts it and returns a receive
channel of type P; packages arrive on it in wire order as they are parsed,
and the channel closes once the underlying transport does (or Close is
called). There is no separate "start reading" step — Run does both.

	ch := duplexchan.NewChannel[string](t, filter.NewLine(), nil)
	for pkg := range ch.Run() {
		// handle pkg
	}

Filters

Parsing is driven by a chain of filter.Filter[P] values. A filter reads
from a filter.Reader cursor over whatever bytes are currently available and
either returns a package or reports that it needs more. A filter may also
hand off to a different filter once it has parsed enough to know the wire
format changes from here on — see filter.Header for an example that
recognizes a fixed prefix and then switches to a length-prefixed binary
codec for everything that follows.

Sending

SendBytes and SendEncoded write onto the channel's outbound side. Both are
safe to call concurrently: calls are serialized so that two packages never
interleave their bytes on the wire, but any number of goroutines may call
them at once.

Errors

Errors raised on the byte path are reported as *Error, whose Kind is one of
the categories in the code subpackage. A Channel never surfaces these to
package consumers directly — a failure closes the channel, and callers
observe that as the receive channel closing rather than as an error value.
IsChannelClosed distinguishes "the channel closed" from other error
conditions a Send call can return.
*/
package duplexchan
