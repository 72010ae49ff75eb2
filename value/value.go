// Package value implements the C2 value representation: every value
// is tagged with an init/status word so uninitialised reads are
// caught at retrieval (invariant 1), per DESIGN NOTES' "Polymorphic
// values manipulated by generic routines" strategy — one Value sum
// type instead of untyped byte copies.
package value

import "github.com/algol68/genie/tree"

// Status mirrors a subset of tree.Status that travels with a runtime
// value rather than with the node that produced it: init, skip,
// standenv-proc, constant, and the GC colour bit.
type Status uint8

const (
	Uninit Status = 0
	Init   Status = 1 << iota
	Skip
	StandenvProc
	Constant
	GCMarked
)

// Kind discriminates the Value union's active member.
type Kind uint8

const (
	KindVoid Kind = iota
	KindInt
	KindReal
	KindBool
	KindChar
	KindBits
	KindComplex
	KindBytes
	KindRef
	KindProc
	KindFormat
	KindRow
	KindStruct
	KindUnion
)

// Complex is the REAL/REAL pair backing COMPLEX and LONG COMPLEX
// modes (SPEC_FULL.md "SUPPLEMENTED FEATURES").
type Complex struct{ Re, Im float64 }

// Value is the tagged runtime representation of every mode family.
// Flat scalars are stored directly; REF/PROC/FORMAT/ROW/STRUCT/UNION
// carry their own nested shape (ref.go, proc.go, row.go, struct.go).
type Value struct {
	Kind   Kind
	Status Status
	Mode   *tree.Mode

	I   int64
	R   float64
	B   bool
	C   byte
	Bit uint64
	Cx  Complex
	By  []byte

	Ref   *Ref
	Proc  *Proc
	Fmt   *Format
	Row   *Row
	Aggr  map[string]*Value // STRUCT fields by name, or the single active UNION member under key "$"
}

// IsInit reports whether v has been assigned a value yet (invariant 1:
// "Every readable value has its INIT bit set").
func (v *Value) IsInit() bool { return v.Status&Init != 0 }

// MarkInit sets the INIT bit after a generator/declaration/assignment
// populates v.
func (v *Value) MarkInit() { v.Status |= Init }

// Format is the runtime representation of a FORMAT-moded value: a
// body node plus the captured environment it closes over (§3
// "FORMAT").
type Format struct {
	Body    *tree.Node
	Environ *Environ
}

// Environ is an opaque captured-frame handle threaded through PROC and
// FORMAT values; memory.Frame implements it. Kept as an interface here
// so package value does not depend on package memory (memory already
// depends on value for its slot storage).
type Environ interface {
	Level() int
}

// Zero returns the zero Value for mode m, uninitialised (invariant 1
// requires callers to MarkInit only once a real value has been
// stored).
func Zero(m *tree.Mode) *Value {
	v := &Value{Mode: m}
	switch m.Cat {
	case tree.CatInt, tree.CatLongInt:
		v.Kind = KindInt
	case tree.CatReal, tree.CatLongReal:
		v.Kind = KindReal
	case tree.CatBool:
		v.Kind = KindBool
	case tree.CatChar:
		v.Kind = KindChar
	case tree.CatBits:
		v.Kind = KindBits
	case tree.CatComplex, tree.CatLongComplex:
		v.Kind = KindComplex
	case tree.CatBytes:
		v.Kind = KindBytes
	case tree.CatRef:
		v.Kind = KindRef
	case tree.CatProc:
		v.Kind = KindProc
	case tree.CatFormat:
		v.Kind = KindFormat
	case tree.CatRow, tree.CatFlexRow:
		v.Kind = KindRow
	case tree.CatStruct:
		v.Kind = KindStruct
		v.Aggr = make(map[string]*Value, len(m.Fields))
	case tree.CatUnion:
		v.Kind = KindUnion
		v.Aggr = make(map[string]*Value, 1)
	default:
		v.Kind = KindVoid
	}
	return v
}

// Copy returns a shallow copy of v (flat scalars only; rows/structs
// must go through the stow package's Clone for the deep-copy
// semantics of C3).
func (v *Value) Copy() *Value {
	cp := *v
	return &cp
}
