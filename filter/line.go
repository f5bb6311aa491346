package filter

// Line is a reference Filter that splits a byte stream on ASCII newlines,
// producing one string package per line with the newline stripped. It
// tolerates arbitrary fragmentation: "he", "llo\nwor", "ld\n" yields the
// packages "hello", "world".
type Line struct {
	Base[string]
}

// NewLine returns a ready-to-use Line filter.
func NewLine() *Line { return &Line{} }

// Filter implements filter.Filter.
func (f *Line) Filter(r *Reader) (string, bool, error) {
	idx := r.IndexByte('\n')
	if idx < 0 {
		return "", false, nil
	}
	line, _ := r.ReadN(idx + 1)
	return string(line[:idx]), true, nil
}

// LineEncoder encodes string packages back into newline-terminated lines,
// matching Line's framing.
type LineEncoder struct{}

// Encode implements Encoder.
func (LineEncoder) Encode(w Writer, pkg string) (int, error) {
	return w.Write(append([]byte(pkg), '\n'))
}
