package duplexchan

import (
	"errors"
	"io"
)

// fillLoop repeatedly reserves a writable region on the inbound pipe, reads
// into it from the transport, and commits what arrived. It is the only
// goroutine that writes to c.inW.
//
// On transport EOF or error, or once the channel starts closing for any
// other reason, fillLoop closes the inbound pipe writer (so the parser
// driver observes end of stream after draining whatever is left) and also
// closes the outbound pipe writer, cascading the shutdown to the send loop
// exactly as it does to the parser driver. This coupling is deliberate:
// a channel whose read side has died has no business still accepting
// packages to send.
func (c *Channel[P]) fillLoop() {
	var closeErr error
	for {
		chunk := c.opts.receiveBufferSize()
		if max := c.opts.maxPackageLength(); max > 0 && max < chunk {
			chunk = max
		}
		buf, err := c.inW.Reserve(chunk)
		if err != nil {
			closeErr = err
			break
		}

		n, err := c.transport.Read(buf)
		if n > 0 {
			c.inW.Commit(n)
			bytesRead.Add(int64(n))
			c.metrics.Count("bytes_read", int64(n))
			if readerDone := c.inW.Flush(); readerDone {
				closeErr = nil
				break
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				closeErr = nil
			} else {
				closeErr = transportError(false, err)
				c.log("fill: transport read error: %v", err)
			}
			break
		}
	}

	c.inW.Close(closeErr)
	c.outW.Close(closeErr)
}
