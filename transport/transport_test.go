package transport_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/colebennett/duplexchan/transport"
)

type rwc struct {
	*bytes.Buffer
	closed bool
}

func (r *rwc) Close() error { r.closed = true; return nil }

func TestStreamBuffersUntilFlush(t *testing.T) {
	back := &rwc{Buffer: new(bytes.Buffer)}
	s := transport.NewStream(back, 8)

	if _, err := s.Write([]byte("hi")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if back.Len() != 0 {
		t.Fatalf("bytes reached the backing writer before Flush: %q", back.Bytes())
	}
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if back.String() != "hi" {
		t.Errorf("got %q, want %q", back.String(), "hi")
	}
}

func TestStreamClose(t *testing.T) {
	back := &rwc{Buffer: new(bytes.Buffer)}
	s := transport.NewStream(back, 0)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !back.closed {
		t.Error("Close did not close the backing stream")
	}
}

func TestLoopback(t *testing.T) {
	a, b := transport.Loopback()
	defer a.Close()
	defer b.Close()

	go func() {
		a.Write([]byte("ping"))
		a.Flush()
	}()

	buf := make([]byte, 4)
	if _, err := io.ReadFull(b, buf); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if string(buf) != "ping" {
		t.Errorf("got %q, want %q", buf, "ping")
	}
}
