package filter

// A Reader is a cursor over a byte slice handed to a Filter for one parse
// attempt. It never copies: Peek and ReadN return slices aliasing the
// underlying buffer. A Reader is single-use — the core
// constructs a fresh one (or re-slices an existing one) for each call into
// the active filter.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader { return &Reader{data: data} }

// Len reports the number of unconsumed bytes remaining.
func (r *Reader) Len() int { return len(r.data) - r.pos }

// Consumed reports how many bytes have been consumed since r was created.
func (r *Reader) Consumed() int { return r.pos }

// Remaining returns the unconsumed suffix of the buffer without consuming
// it.
func (r *Reader) Remaining() []byte { return r.data[r.pos:] }

// Peek returns the next n bytes without consuming them. It reports false if
// fewer than n bytes remain.
func (r *Reader) Peek(n int) ([]byte, bool) {
	if r.Len() < n {
		return nil, false
	}
	return r.data[r.pos : r.pos+n], true
}

// Advance consumes n bytes, which must already have been observed via Peek
// or otherwise known to be present.
func (r *Reader) Advance(n int) {
	if n < 0 || n > r.Len() {
		panic("filter: Advance out of range")
	}
	r.pos += n
}

// ReadByte consumes and returns the next byte. It reports false if the
// buffer is exhausted.
func (r *Reader) ReadByte() (byte, bool) {
	if r.Len() == 0 {
		return 0, false
	}
	b := r.data[r.pos]
	r.pos++
	return b, true
}

// ReadN consumes and returns the next n bytes. It reports false, consuming
// nothing, if fewer than n bytes remain.
func (r *Reader) ReadN(n int) ([]byte, bool) {
	buf, ok := r.Peek(n)
	if !ok {
		return nil, false
	}
	r.pos += n
	return buf, true
}

// IndexByte returns the offset of the first occurrence of b in the
// unconsumed portion of the buffer, or -1 if it does not occur. It does not
// consume any bytes.
func (r *Reader) IndexByte(b byte) int {
	for i, c := range r.data[r.pos:] {
		if c == b {
			return i
		}
	}
	return -1
}
