package filter

import (
	"encoding/binary"
	"errors"
)

// ErrVarintOverflow is returned when a varint length prefix does not fit in
// 64 bits.
var ErrVarintOverflow = errors.New("filter: varint length overflow")

// Varint is a reference Filter that frames each package with a varint
// length prefix, as encoding/binary defines it — the same framing
// bitbucket.org/creachadair/jrpc2/channel.Varint uses for a full Channel.
// Here it only does the parsing half; VarintEncoder does the writing half.
type Varint struct {
	Base[[]byte]
}

// NewVarint returns a ready-to-use Varint filter.
func NewVarint() *Varint { return &Varint{} }

// Filter implements filter.Filter.
func (f *Varint) Filter(r *Reader) ([]byte, bool, error) {
	n, nbytes := binary.Uvarint(r.Remaining())
	if nbytes < 0 {
		return nil, false, ErrVarintOverflow
	}
	if nbytes == 0 {
		return nil, false, nil
	}
	total := nbytes + int(n)
	full, ok := r.Peek(total)
	if !ok {
		return nil, false, nil
	}
	r.Advance(total)
	pkg := make([]byte, len(full)-nbytes)
	copy(pkg, full[nbytes:])
	return pkg, true, nil
}

// VarintEncoder writes packages with a varint length prefix, matching
// Varint's framing.
type VarintEncoder struct{}

// Encode implements Encoder.
func (VarintEncoder) Encode(w Writer, pkg []byte) (int, error) {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(pkg)))
	nw, err := w.Write(lenBuf[:n])
	if err != nil {
		return nw, err
	}
	nw2, err := w.Write(pkg)
	return nw + nw2, err
}
