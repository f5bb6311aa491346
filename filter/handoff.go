package filter

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ProtocolInfo is the context type shared across the Header/Binary filter
// pair, demonstrating how a protocol carries state across a handoff: the
// core copies whatever Context() returns into the successor's SetContext,
// uninterpreted.
type ProtocolInfo struct {
	Name string
}

// Header is a reference Filter that matches a fixed literal prefix and then
// hands off to a Binary filter for the remainder of the stream: a 4-byte
// header such as "BIN\n" followed by length-prefixed binary frames.
type Header struct {
	Base[[]byte]
	want []byte
}

// NewHeader returns a Header filter that expects the literal prefix given
// by header before handing off to a Binary filter.
func NewHeader(header string) *Header {
	f := &Header{want: []byte(header)}
	f.SetContext(&ProtocolInfo{})
	return f
}

// Filter implements filter.Filter. It never produces a package itself; once
// the header matches it arranges for a Binary filter to take over.
func (f *Header) Filter(r *Reader) ([]byte, bool, error) {
	data, ok := r.Peek(len(f.want))
	if !ok {
		return nil, false, nil
	}
	if !bytes.Equal(data, f.want) {
		return nil, false, fmt.Errorf("filter: unexpected header %q", data)
	}
	r.Advance(len(f.want))
	if info, ok := f.Context().(*ProtocolInfo); ok {
		info.Name = "binary-v1"
	}
	f.SetNext(NewBinary())
	return nil, false, nil
}

// Binary is a reference Filter that parses frames prefixed by a 16-bit
// big-endian length, as used after a Header handoff.
type Binary struct {
	Base[[]byte]
}

// NewBinary returns a ready-to-use Binary filter.
func NewBinary() *Binary { return &Binary{} }

// Filter implements filter.Filter.
func (f *Binary) Filter(r *Reader) ([]byte, bool, error) {
	lenBuf, ok := r.Peek(2)
	if !ok {
		return nil, false, nil
	}
	n := int(binary.BigEndian.Uint16(lenBuf))
	full, ok := r.Peek(2 + n)
	if !ok {
		return nil, false, nil
	}
	r.Advance(2 + n)
	pkg := make([]byte, n)
	copy(pkg, full[2:])
	return pkg, true, nil
}

// BinaryEncoder writes frames with a 16-bit big-endian length prefix,
// matching Binary's framing.
type BinaryEncoder struct{}

// Encode implements Encoder.
func (BinaryEncoder) Encode(w Writer, pkg []byte) (int, error) {
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(pkg)))
	nw, err := w.Write(lenBuf[:])
	if err != nil {
		return nw, err
	}
	nw2, err := w.Write(pkg)
	return nw + nw2, err
}
