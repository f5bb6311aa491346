package duplexchan

import (
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/colebennett/duplexchan/code"
	"github.com/colebennett/duplexchan/filter"
	"github.com/colebennett/duplexchan/metrics"
	"github.com/colebennett/duplexchan/pipe"
	"github.com/colebennett/duplexchan/transport"
)

// State describes the lifecycle stage of a Channel.
type State int32

const (
	Created State = iota
	Running
	Closing
	Closed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Running:
		return "running"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Channel is a pipelined duplex byte channel over a single transport. It is
// generic over the package type P that its filter chain produces and that
// its encoders consume.
type Channel[P any] struct {
	transport transport.Transport
	opts      *Options
	log       func(string, ...any)
	metrics   *metrics.M

	inW *pipe.Writer
	inR *pipe.Reader

	outW *pipe.Writer
	outR *pipe.Reader

	queue chan P
	done  chan struct{}

	// active is mutated only by the parser driver goroutine, which is also
	// the only goroutine that reads it.
	active filter.Filter[P]

	sendSem *semaphore.Weighted

	mu            sync.Mutex
	state         State
	closeErr      error
	closeOnce     sync.Once
	queueCloseFn  sync.Once
	onClosed      func()
	onClosedFired bool
}

// NewChannel constructs an unstarted Channel driven by initial as the first
// active filter. Call Run to start it.
func NewChannel[P any](t transport.Transport, initial filter.Filter[P], opts *Options) *Channel[P] {
	var inW *pipe.Writer
	var inR *pipe.Reader
	if ip := opts.inPipe(); ip != nil {
		inW, inR = ip.W, ip.R
	} else {
		inW, inR = pipe.New(opts.receiveBufferSize())
	}

	var outW *pipe.Writer
	var outR *pipe.Reader
	if op := opts.outPipe(); op != nil {
		outW, outR = op.W, op.R
	} else {
		outW, outR = pipe.New(opts.receiveBufferSize())
	}

	c := &Channel[P]{
		transport: t,
		opts:      opts,
		log:       opts.logger(),
		metrics:   metrics.New(),
		inW:       inW,
		inR:       inR,
		outW:      outW,
		outR:      outR,
		queue:     make(chan P, opts.queueSize()),
		done:      make(chan struct{}),
		active:    initial,
		sendSem:   semaphore.NewWeighted(1),
		state:     Created,
	}
	return c
}

// OnClosed registers a callback invoked exactly once, after both the fill
// and send loops (and the parser driver) have settled. It must be called
// before Run.
func (c *Channel[P]) OnClosed(fn func()) { c.onClosed = fn }

// State reports the channel's current lifecycle stage.
func (c *Channel[P]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Metrics returns the channel's private metrics collector.
func (c *Channel[P]) Metrics() *metrics.M { return c.metrics }

// Run starts the fill, parse, and send loops and returns the package
// queue. The returned channel yields packages in wire order and is closed
// once the channel has finished closing — that close is the end-of-stream
// sentinel. Run must not be called more than once.
func (c *Channel[P]) Run() <-chan P {
	c.mu.Lock()
	if c.state != Created {
		c.mu.Unlock()
		panic("duplexchan: Run called more than once")
	}
	c.state = Running
	c.mu.Unlock()

	channelsActive.Add(1)

	var g errgroup.Group
	g.Go(func() error { c.guardLoop("fill", c.fillLoop); return nil })
	g.Go(func() error { c.guardLoop("send", c.sendLoop); return nil })
	g.Go(func() error { c.guardLoop("parse", c.parseLoop); return nil })

	go func() {
		g.Wait() // errors are reported via Close/closeErr, not the group; each loop handles its own
		c.settle()
	}()

	return c.queue
}

// Close requests that the channel shut down. It cancels the inbound pipe
// reader (so the parser driver exits promptly without draining further
// data) and closes the transport (unblocking the fill loop with an error
// or EOF). Close is idempotent and safe to call from any goroutine,
// including the channel's own loops.
func (c *Channel[P]) Close() error {
	return c.closeWith(ErrChannelClosed)
}

// closeWith performs the shutdown sequence exactly once, recording err as
// the reason. Repeated calls, or calls after the channel closed itself
// naturally, are no-ops.
func (c *Channel[P]) closeWith(err error) error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		if c.state == Created {
			c.state = Closed
		} else {
			c.state = Closing
		}
		c.closeErr = err
		c.mu.Unlock()

		close(c.done)
		c.inR.Cancel()
		c.transport.Close()
		c.outW.Close(err)
	})
	return nil
}

// closeQueue closes the package queue exactly once. It is the mechanism by
// which the end-of-stream sentinel is delivered to the consumer. It must
// only be called once the parser driver — the queue's sole producer — has
// actually exited, which settle guarantees by running after g.Wait();
// closing it any earlier would race the parser's in-flight
// "select { case c.queue <- pkg: ... }".
func (c *Channel[P]) closeQueue() {
	c.queueCloseFn.Do(func() { close(c.queue) })
}

// settle waits for all three loops to finish (called once they have, via
// Run's supervisory goroutine), closes the package queue, transitions the
// channel to Closed, and fires OnClosed exactly once.
func (c *Channel[P]) settle() {
	c.closeQueue()

	c.mu.Lock()
	c.state = Closed
	fire := !c.onClosedFired
	c.onClosedFired = true
	cb := c.onClosed
	c.mu.Unlock()

	channelsActive.Add(-1)

	if fire && cb != nil {
		cb()
	}
}

// guardLoop runs fn, recovering a panic from it (a filter or transport
// supplied by the caller is the only thing that can panic here) and
// reporting it as an UnhandledLoopError instead of crashing the process.
func (c *Channel[P]) guardLoop(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			unhandledErrors.Add(1)
			err := errorf(code.UnhandledLoopError, nil, "%s loop panicked: %v", name, r)
			c.log("%s: unhandled panic: %v", name, r)
			c.closeWith(err)
		}
	}()
	fn()
}

// transportError categorizes an I/O failure observed by the fill or send
// loop as either a read-side or write-side *Error.
func transportError(writeSide bool, err error) *Error {
	if writeSide {
		return errorf(code.TransportWrite, err, "transport write failed")
	}
	return errorf(code.TransportRead, err, "transport read failed")
}
