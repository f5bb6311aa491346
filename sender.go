package duplexchan

import (
	"bytes"
	"context"

	"github.com/colebennett/duplexchan/filter"
)

// SendBytes writes p onto the outbound pipe as a single unit and flushes
// it toward the send loop. Concurrent callers are serialized against each
// other — SendBytes acquires a weight-1 semaphore for the duration of the
// reserve/commit/flush sequence — so two goroutines calling SendBytes at
// once never interleave their bytes on the wire. ctx governs only the wait
// to acquire that serialization slot, not the send itself.
func (c *Channel[P]) SendBytes(ctx context.Context, p []byte) error {
	if err := c.sendSem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer c.sendSem.Release(1)

	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}

	buf, err := c.outW.Reserve(len(p))
	if err != nil {
		return ErrChannelClosed
	}
	copy(buf, p)
	c.outW.Commit(len(p))
	c.outW.Flush()
	return nil
}

// SendEncoded encodes pkg with enc and sends the result via SendBytes. The
// encoder writes into a scratch buffer first so its wire size need not be
// known up front.
func (c *Channel[P]) SendEncoded(ctx context.Context, enc filter.Encoder[P], pkg P) error {
	var buf bytes.Buffer
	if _, err := enc.Encode(&buf, pkg); err != nil {
		return err
	}
	if err := c.SendBytes(ctx, buf.Bytes()); err != nil {
		return err
	}
	packagesSent.Add(1)
	c.metrics.Count("packages_sent", 1)
	return nil
}
