package value

import (
	"testing"

	"github.com/algol68/genie/tree"
)

var testIntMode = &tree.Mode{Cat: tree.CatInt, Size: 8, ShortID: "int", Name: "INT"}

func TestIsInitAndMarkInit(t *testing.T) {
	v := Zero(testIntMode)
	if v.IsInit() {
		t.Error("a fresh Zero value should not be init")
	}
	v.MarkInit()
	if !v.IsInit() {
		t.Error("MarkInit should set the INIT bit")
	}
}

func TestZeroPicksKindPerCategory(t *testing.T) {
	cases := []struct {
		cat  tree.Cat
		want Kind
	}{
		{tree.CatInt, KindInt},
		{tree.CatLongInt, KindInt},
		{tree.CatReal, KindReal},
		{tree.CatBool, KindBool},
		{tree.CatChar, KindChar},
		{tree.CatBits, KindBits},
		{tree.CatComplex, KindComplex},
		{tree.CatBytes, KindBytes},
		{tree.CatRef, KindRef},
		{tree.CatProc, KindProc},
		{tree.CatFormat, KindFormat},
		{tree.CatRow, KindRow},
		{tree.CatFlexRow, KindRow},
		{tree.CatStruct, KindStruct},
		{tree.CatUnion, KindUnion},
		{tree.CatVoid, KindVoid},
	}
	for _, c := range cases {
		got := Zero(&tree.Mode{Cat: c.cat}).Kind
		if got != c.want {
			t.Errorf("Zero(Cat %v).Kind = %v, want %v", c.cat, got, c.want)
		}
	}
}

func TestZeroAllocatesAggrForStructAndUnion(t *testing.T) {
	s := Zero(&tree.Mode{Cat: tree.CatStruct, Fields: []tree.Field{{Name: "a"}, {Name: "b"}}})
	if s.Aggr == nil {
		t.Fatal("STRUCT zero value should have an Aggr map")
	}
	u := Zero(&tree.Mode{Cat: tree.CatUnion})
	if u.Aggr == nil {
		t.Fatal("UNION zero value should have an Aggr map")
	}
}

func TestCopyIsShallowAndIndependent(t *testing.T) {
	v := Zero(testIntMode)
	v.I = 42
	v.MarkInit()

	cp := v.Copy()
	cp.I = 99
	if v.I != 42 {
		t.Errorf("mutating the copy's scalar field should not affect the original, got %d", v.I)
	}
	if cp.Mode != v.Mode {
		t.Error("Copy should preserve the shared Mode pointer")
	}
}
