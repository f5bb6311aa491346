package code_test

import (
	"errors"
	"testing"

	"github.com/colebennett/duplexchan/code"
)

type testCoder code.Kind

func (t testCoder) Code() code.Kind { return code.Kind(t) }
func (testCoder) Error() string     { return "bogus" }

func TestFromError(t *testing.T) {
	tests := []struct {
		input error
		want  code.Kind
	}{
		{nil, code.NoError},
		{testCoder(code.ProtocolError), code.ProtocolError},
		{testCoder(code.OversizePackage), code.OversizePackage},
		{errors.New("plain"), code.Unknown},
	}
	for _, test := range tests {
		if got := code.FromError(test.input); got != test.want {
			t.Errorf("FromError(%v): got %v, want %v", test.input, got, test.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := code.ProtocolError.String(); got != "protocol error" {
		t.Errorf("String(): got %q, want %q", got, "protocol error")
	}
	if got := code.Kind(999).String(); got != "code(999)" {
		t.Errorf("String() for unknown kind: got %q, want %q", got, "code(999)")
	}
}
