// Package filter defines the protocol-filter contract driven by the parser
// in the duplexchan package, along with a cursor type for parsing
// fragmented byte sequences and a handful of reference filters.
//
// A Filter is one stage of protocol parsing. It consumes bytes from a
// *Reader and either produces a package or reports that it needs more
// data. After producing a package it may hand off to a successor filter,
// carrying its context along — this is how a protocol with a fixed header
// followed by a different wire format is expressed without the core
// knowing anything about either format.
package filter

// A Filter parses packages of type P out of a byte stream.
//
// Filter advances r and returns either a parsed package with ok == true, or
// ok == false to report that more bytes are needed before a package can be
// produced. An error return is always protocol-fatal and closes the
// channel.
//
// After a successful parse, the core calls Reset so the filter can drop any
// per-package scratch state before it is invoked again.
//
// NextFilter, if non-nil when checked after a call to Filter, names the
// filter that should become active from here on; the core copies Context()
// from the current filter into it via SetContext before switching. A filter
// that never changes the active filter can leave NextFilter always nil.
type Filter[P any] interface {
	Filter(r *Reader) (pkg P, ok bool, err error)
	Reset()
	NextFilter() Filter[P]
	Context() any
	SetContext(any)
}

// Encoder writes packages of type P to an outbound byte stream, matching a
// Filter's wire format in the other direction.
type Encoder[P any] interface {
	Encode(w Writer, pkg P) (int, error)
}

// Writer is the minimal byte-sink surface an Encoder needs. It is
// satisfied by *bytes.Buffer (which duplexchan's SendEncoded passes) and
// *bufio.Writer; an Encoder must not retain it past Encode.
type Writer interface {
	Write(p []byte) (int, error)
}

// Base embeds into a Filter implementation to provide the bookkeeping most
// filters need: a stored context value and a nil successor. Embedders only
// need to implement Filter and, if they hand off, call SetNext from within
// their Filter method.
type Base[P any] struct {
	ctx  any
	next Filter[P]
}

// Context implements part of Filter.
func (b *Base[P]) Context() any { return b.ctx }

// SetContext implements part of Filter.
func (b *Base[P]) SetContext(v any) { b.ctx = v }

// NextFilter implements part of Filter.
func (b *Base[P]) NextFilter() Filter[P] { return b.next }

// SetNext arranges for the successor filter to become active after the
// current Filter call returns. It is typically called from within Filter
// itself once a handoff condition is recognized.
func (b *Base[P]) SetNext(f Filter[P]) { b.next = f }

// Reset implements part of Filter as a no-op; filters with per-package
// scratch state should override it.
func (b *Base[P]) Reset() {}
