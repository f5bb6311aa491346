// Package transport defines the byte-stream transport adapter a Channel
// runs over, along with two concrete implementations: Stream, for a real
// net.Conn, and Loopback, an in-memory connected pair for tests.
//
// This mirrors the role bitbucket.org/creachadair/jrpc2/server's conn.go
// and local.go play for jrpc2.Conn: they wrap a net.Conn, or build an
// in-memory pipe pair, so the rest of the engine never has to know which
// kind of duplex byte stream it's driving.
package transport

import (
	"bufio"
	"io"
	"net"
)

// A Transport is a full-duplex byte stream a Channel reads from and writes
// to. Flush is called after a batch of writes and must make them visible
// to the peer; Close releases any underlying resources.
type Transport interface {
	io.Reader
	io.Writer
	Flush() error
	io.Closer
}

// Stream adapts a net.Conn (or any io.ReadWriteCloser) into a Transport,
// buffering writes so that Flush has an observable effect instead of
// forcing a syscall per Write.
type Stream struct {
	rwc io.ReadWriteCloser
	w   *bufio.Writer
}

// NewStream wraps rwc as a Transport. bufSize controls the outbound write
// buffer; a value <= 0 selects a 4 KiB default.
func NewStream(rwc io.ReadWriteCloser, bufSize int) *Stream {
	if bufSize <= 0 {
		bufSize = 4096
	}
	return &Stream{rwc: rwc, w: bufio.NewWriterSize(rwc, bufSize)}
}

// Read implements Transport.
func (s *Stream) Read(p []byte) (int, error) { return s.rwc.Read(p) }

// Write implements Transport.
func (s *Stream) Write(p []byte) (int, error) { return s.w.Write(p) }

// Flush implements Transport.
func (s *Stream) Flush() error { return s.w.Flush() }

// Close implements Transport.
func (s *Stream) Close() error { return s.rwc.Close() }

// Loopback returns a pair of connected Transport values backed by an
// in-memory net.Pipe, for tests and for the round-trip scenario where a
// channel's outbound traffic needs to feed right back into an inbound
// channel without a real socket.
func Loopback() (a, b Transport) {
	c1, c2 := net.Pipe()
	return NewStream(c1, 0), NewStream(c2, 0)
}
