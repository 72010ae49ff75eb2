package monitor

import (
	"testing"

	"github.com/algol68/genie/value"
)

func TestRenderValueScalars(t *testing.T) {
	cases := []struct {
		v    *value.Value
		want string
	}{
		{&value.Value{Kind: value.KindInt, I: 42}, "42"},
		{&value.Value{Kind: value.KindReal, R: 3.5}, "3.5"},
		{&value.Value{Kind: value.KindBool, B: true}, "true"},
		{&value.Value{Kind: value.KindChar, C: 'x'}, `'x'`},
	}
	for _, c := range cases {
		if got := renderValue(c.v); got != c.want {
			t.Errorf("renderValue(%+v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestRenderValueNilRef(t *testing.T) {
	v := &value.Value{Kind: value.KindRef, Ref: value.NewNilRef(0)}
	if got := renderValue(v); got != "NIL" {
		t.Errorf("got %q, want NIL", got)
	}
}

func TestRenderValueNilPointer(t *testing.T) {
	if got := renderValue(nil); got != "<void>" {
		t.Errorf("got %q, want <void>", got)
	}
}
