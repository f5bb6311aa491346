package duplexchan

import (
	"github.com/colebennett/duplexchan/code"
	"github.com/colebennett/duplexchan/filter"
)

// parseLoop is the parser driver. It repeatedly asks the inbound pipe
// reader for the next available segment, hands it to readerBuffer for as
// many packages as it yields, and reports back how much of the segment
// was consumed and examined. It exits when the inbound pipe reports
// cancellation, a filter reports a fatal error, or the pipe completes with
// no bytes left to examine.
func (c *Channel[P]) parseLoop() {
	var loopErr error

	for {
		data, completed, canceled, err := c.inR.Next()
		if canceled {
			break
		}

		consumed, examined, ferr := c.readerBuffer(data)
		c.inR.Advance(consumed, examined)

		if ferr != nil {
			loopErr = ferr
			c.log("parse: %v", ferr)
			break
		}
		if completed {
			if len(data) == 0 || consumed >= len(data) {
				loopErr = err
				break
			}
			if consumed == 0 {
				loopErr = errorf(code.ProtocolError, err,
					"incomplete package at end of stream (%d bytes left)", len(data)-consumed)
				break
			}
			// Partial progress with bytes still left over; loop once more
			// so the (possibly now-different) active filter gets a chance
			// to drain the rest. Next returns immediately since the pipe
			// is already closed.
		}
	}

	c.closeWith(loopErr)
}

// readerBuffer drives the active filter over data, producing zero or more
// packages, and reports how far the filter chain got: consumed is how many
// leading bytes were fully parsed, examined is how many bytes were looked
// at (which may exceed consumed when a filter peeked ahead and found it
// needed more data than was available).
//
// A filter that sets NextFilter is replaced as soon as its call returns,
// with the successor's Context seeded from the outgoing filter's Context.
// If that call produced a package, the successor runs immediately on any
// bytes left in data; if it produced none, the leftover bytes are reported
// as examined and the successor first sees them on the next wake-up (when
// more bytes arrive or the pipe completes).
func (c *Channel[P]) readerBuffer(data []byte) (consumed, examined int, err error) {
	total := 0

	for {
		active := c.active
		r := filter.NewReader(data)
		pkg, ok, ferr := active.Filter(r)
		used := r.Consumed()
		remainingAfter := len(data) - used
		total += used

		if next := active.NextFilter(); next != nil {
			next.SetContext(active.Context())
			c.active = next
		}

		if ferr != nil {
			if _, isCoder := ferr.(code.Coder); !isCoder {
				ferr = errorf(code.ProtocolError, ferr, "filter error")
			}
			return total, total, ferr
		}

		// The length metric for oversize enforcement uses what this call
		// consumed when it consumed anything; a filter that peeks ahead
		// without consuming is charged for how much of the buffer it would
		// need to re-examine on the next call.
		lenMetric := used
		if lenMetric == 0 {
			lenMetric = remainingAfter
		}
		if max := c.opts.maxPackageLength(); max > 0 && lenMetric > max {
			oversizeErrors.Add(1)
			return total, total, errorf(code.OversizePackage, nil,
				"package spans %d bytes, exceeding the limit of %d", lenMetric, max)
		}

		data = data[used:]

		if !ok {
			return total, total + len(data), nil
		}

		active.Reset()
		packagesParsed.Add(1)
		c.metrics.Count("packages_parsed", 1)

		select {
		case c.queue <- pkg:
		case <-c.done:
			return total, total, nil
		}

		if len(data) == 0 {
			return total, total, nil
		}
	}
}
