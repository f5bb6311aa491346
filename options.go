package duplexchan

import (
	"fmt"
	"io"
	"log"

	"github.com/colebennett/duplexchan/pipe"
)

const logFlags = log.LstdFlags | log.Lshortfile

// PipePair bundles the two ends of a pipe created by pipe.New, for callers
// that want to inject their own inbound or outbound pipe (for testing, or
// to tune buffer growth behavior) instead of letting NewChannel build one.
type PipePair struct {
	W *pipe.Writer
	R *pipe.Reader
}

// Options controls the behaviour of a Channel created by NewChannel. A nil
// *Options provides sensible defaults, following the pattern of
// bitbucket.org/creachadair/jrpc2's ServerOptions/ClientOptions.
type Options struct {
	// ReceiveBufferSize is the target size, in bytes, of the contiguous
	// writable region the fill loop requests from the inbound pipe on each
	// read. Must be positive; zero or negative is invalid and is replaced
	// by the default.
	ReceiveBufferSize int

	// MaxPackageLength bounds the number of bytes a single package may
	// span before the channel is closed with an OversizePackage error.
	// Zero (the default) means unlimited.
	MaxPackageLength int

	// QueueSize is the capacity of the package queue channel returned by
	// Run. Zero selects a default of 64.
	QueueSize int

	// InPipe and OutPipe, if set, are used as the inbound and outbound
	// pipes instead of ones constructed internally.
	InPipe  *PipePair
	OutPipe *PipePair

	// If not nil, debug logs are written here.
	LogWriter io.Writer
}

const defaultReceiveBufferSize = 4096
const defaultQueueSize = 64

func (o *Options) receiveBufferSize() int {
	if o == nil || o.ReceiveBufferSize <= 0 {
		return defaultReceiveBufferSize
	}
	return o.ReceiveBufferSize
}

func (o *Options) maxPackageLength() int {
	if o == nil {
		return 0
	}
	return o.MaxPackageLength
}

func (o *Options) queueSize() int {
	if o == nil || o.QueueSize <= 0 {
		return defaultQueueSize
	}
	return o.QueueSize
}

func (o *Options) inPipe() *PipePair {
	if o == nil {
		return nil
	}
	return o.InPipe
}

func (o *Options) outPipe() *PipePair {
	if o == nil {
		return nil
	}
	return o.OutPipe
}

func (o *Options) logger() func(string, ...any) {
	if o == nil || o.LogWriter == nil {
		return func(string, ...any) {}
	}
	logger := log.New(o.LogWriter, "[duplexchan] ", logFlags)
	return func(msg string, args ...any) { logger.Output(2, fmt.Sprintf(msg, args...)) }
}
