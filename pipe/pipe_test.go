package pipe_test

import (
	"errors"
	"testing"
	"time"

	"github.com/colebennett/duplexchan/pipe"
)

func TestFragmentedWrites(t *testing.T) {
	w, r := pipe.New(4)

	go func() {
		for _, chunk := range []string{"he", "llo, ", "world"} {
			buf, err := w.Reserve(len(chunk))
			if err != nil {
				t.Errorf("Reserve: %v", err)
				return
			}
			copy(buf, chunk)
			w.Commit(len(chunk))
			w.Flush()
		}
		w.Close(nil)
	}()

	var got []byte
	for {
		data, completed, canceled, err := r.Next()
		if canceled {
			t.Fatal("unexpected cancellation")
		}
		got = append(got, data...)
		r.Advance(len(data), len(data))
		if completed {
			if err != nil {
				t.Fatalf("unexpected close error: %v", err)
			}
			break
		}
	}
	if string(got) != "hello, world" {
		t.Errorf("got %q, want %q", got, "hello, world")
	}
}

func TestExaminedWithoutConsumeDoesNotWake(t *testing.T) {
	w, r := pipe.New(4)

	buf, _ := w.Reserve(3)
	copy(buf, "abc")
	w.Commit(3)
	w.Flush()

	data, completed, canceled, err := r.Next()
	if canceled || completed || err != nil {
		t.Fatalf("unexpected Next result: completed=%v canceled=%v err=%v", completed, canceled, err)
	}
	if string(data) != "abc" {
		t.Fatalf("got %q, want %q", data, "abc")
	}
	// Examine all of it but consume none: Next must not return again until
	// bytes past what was examined arrive.
	r.Advance(0, len(data))

	woke := make(chan struct{})
	go func() {
		r.Next()
		close(woke)
	}()

	select {
	case <-woke:
		t.Fatal("Next returned before new bytes arrived")
	case <-time.After(20 * time.Millisecond):
	}

	buf2, _ := w.Reserve(1)
	copy(buf2, "d")
	w.Commit(1)
	w.Flush()

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("Next did not wake after new bytes arrived")
	}
}

func TestCloseWithError(t *testing.T) {
	w, r := pipe.New(0)
	wantErr := errors.New("boom")

	buf, _ := w.Reserve(2)
	copy(buf, "ab")
	w.Commit(2)
	w.Close(wantErr)

	data, completed, canceled, err := r.Next()
	if canceled {
		t.Fatal("unexpected cancellation")
	}
	if !completed {
		t.Fatal("expected completed=true")
	}
	if string(data) != "ab" {
		t.Errorf("got %q, want %q", data, "ab")
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("got err %v, want %v", err, wantErr)
	}
}

func TestReserveAfterCloseFails(t *testing.T) {
	w, _ := pipe.New(0)
	w.Close(nil)
	if _, err := w.Reserve(1); !errors.Is(err, pipe.ErrClosedPipe) {
		t.Errorf("Reserve after Close: got %v, want ErrClosedPipe", err)
	}
}

func TestCancelUnblocksReader(t *testing.T) {
	_, r := pipe.New(0)

	done := make(chan struct{})
	go func() {
		_, _, canceled, _ := r.Next()
		if !canceled {
			t.Error("expected canceled=true")
		}
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	r.Cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Cancel did not unblock Next")
	}
}
