package filter_test

import (
	"bytes"
	"testing"

	"github.com/colebennett/duplexchan/filter"
)

// driveOne feeds data to f a fragment at a time (as given by splits, byte
// offsets into data) and returns every package produced, mimicking the
// core's readerBuffer loop closely enough to exercise a Filter on its own.
func driveOne[P any](t *testing.T, f filter.Filter[P], data []byte, splits []int) []P {
	t.Helper()
	var pkgs []P
	var pending []byte // unconsumed bytes carried into the next fragment
	start := 0
	for _, end := range append(splits, len(data)) {
		chunk := data[start:end]
		start = end

		buf := append(pending, chunk...)
		for len(buf) > 0 {
			r := filter.NewReader(buf)
			active := f
			pkg, ok, err := active.Filter(r)
			if err != nil {
				t.Fatalf("Filter: unexpected error: %v", err)
			}
			buf = buf[r.Consumed():]
			if !ok {
				break
			}
			active.Reset()
			pkgs = append(pkgs, pkg)
			if len(buf) == 0 {
				break
			}
		}
		pending = append([]byte{}, buf...)
	}
	return pkgs
}

func TestLineFragmented(t *testing.T) {
	f := filter.NewLine()
	got := driveOne[string](t, f, []byte("he"), nil)
	if len(got) != 0 {
		t.Fatalf("got %v packages from a partial fragment, want none", got)
	}

	// Once the fragments "he", "llo\nwor", "ld\n" have all arrived, the pipe
	// hands the parser driver their concatenation; feed that whole buffer
	// and expect both lines from it.
	buf := []byte("hello\nworld\n")
	r := filter.NewReader(buf)
	var lines []string
	for r.Len() > 0 {
		pkg, ok, err := f.Filter(r)
		if err != nil {
			t.Fatalf("Filter: %v", err)
		}
		if !ok {
			break
		}
		f.Reset()
		lines = append(lines, pkg)
	}
	if len(lines) != 2 || lines[0] != "hello" || lines[1] != "world" {
		t.Errorf("got %v, want [hello world]", lines)
	}
}

func TestLineEncoderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := filter.LineEncoder{}
	if _, err := enc.Encode(&buf, "hello"); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	f := filter.NewLine()
	r := filter.NewReader(buf.Bytes())
	pkg, ok, err := f.Filter(r)
	if err != nil || !ok {
		t.Fatalf("Filter: pkg=%q ok=%v err=%v", pkg, ok, err)
	}
	if pkg != "hello" {
		t.Errorf("got %q, want %q", pkg, "hello")
	}
}

func TestVarintRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := filter.VarintEncoder{}
	want := []byte("some binary payload")
	if _, err := enc.Encode(&buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	f := filter.NewVarint()
	r := filter.NewReader(buf.Bytes())
	pkg, ok, err := f.Filter(r)
	if err != nil || !ok {
		t.Fatalf("Filter: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(pkg, want) {
		t.Errorf("got %q, want %q", pkg, want)
	}
	if r.Len() != 0 {
		t.Errorf("Filter left %d unconsumed bytes", r.Len())
	}
}

func TestVarintNeedsMoreData(t *testing.T) {
	var buf bytes.Buffer
	filter.VarintEncoder{}.Encode(&buf, []byte("payload"))
	full := buf.Bytes()

	f := filter.NewVarint()
	r := filter.NewReader(full[:len(full)-2])
	_, ok, err := f.Filter(r)
	if err != nil {
		t.Fatalf("Filter: unexpected error: %v", err)
	}
	if ok {
		t.Fatal("Filter reported a complete package from a truncated buffer")
	}
	if r.Consumed() != 0 {
		t.Errorf("Filter consumed %d bytes before reporting it needed more", r.Consumed())
	}
}

func TestHeaderHandoffToBinary(t *testing.T) {
	var wire bytes.Buffer
	wire.WriteString("BIN\n")
	filter.BinaryEncoder{}.Encode(&wire, []byte("frame-one"))
	filter.BinaryEncoder{}.Encode(&wire, []byte("frame-two"))

	var active filter.Filter[[]byte] = filter.NewHeader("BIN\n")
	buf := wire.Bytes()

	var got [][]byte
	for len(buf) > 0 {
		r := filter.NewReader(buf)
		pkg, ok, err := active.Filter(r)
		if err != nil {
			t.Fatalf("Filter: %v", err)
		}
		used := r.Consumed()
		buf = buf[used:]

		if next := active.NextFilter(); next != nil {
			next.SetContext(active.Context())
			active = next
		}
		if !ok {
			if used == 0 {
				t.Fatal("no progress and no package: would loop forever")
			}
			continue
		}
		active.Reset()
		got = append(got, pkg)
	}

	if len(got) != 2 || string(got[0]) != "frame-one" || string(got[1]) != "frame-two" {
		t.Errorf("got %q, want [frame-one frame-two]", got)
	}
}

func TestHeaderMismatchIsFatal(t *testing.T) {
	f := filter.NewHeader("BIN\n")
	r := filter.NewReader([]byte("TXT\nrest"))
	_, _, err := f.Filter(r)
	if err == nil {
		t.Fatal("expected an error for a mismatched header")
	}
}
