package duplexchan

// sendLoop repeatedly takes the next available segment of the outbound
// pipe, writes it to the transport, and flushes. It is the only goroutine
// that reads from c.outR.
//
// The outbound pipe closes either because fillLoop cascaded a read-side
// failure onto it, or because Close was called directly; either way
// sendLoop drains whatever was already queued for send and then exits
// without itself tearing down the channel. A transport write or flush
// failure is the one case where sendLoop initiates shutdown itself, since
// nothing else would otherwise notice a dead write side.
func (c *Channel[P]) sendLoop() {
	for {
		data, completed, canceled, err := c.outR.Next()
		if canceled {
			return
		}

		if len(data) > 0 {
			n, werr := c.transport.Write(data)
			if n > 0 {
				bytesWritten.Add(int64(n))
				c.metrics.Count("bytes_written", int64(n))
			}
			if werr == nil {
				werr = c.transport.Flush()
			}
			c.outR.Advance(len(data), len(data))
			if werr != nil {
				c.log("send: transport error: %v", werr)
				c.closeWith(transportError(true, werr))
				return
			}
		} else {
			c.outR.Advance(0, 0)
		}

		if completed {
			if err != nil {
				c.log("send: outbound pipe closed with error: %v", err)
			}
			return
		}
	}
}
