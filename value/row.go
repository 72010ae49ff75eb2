package value

import "github.com/algol68/genie/tree"

// Tuple is one dimension's bounds (GLOSSARY "Tuple"): lower, upper,
// span (stride in elements), shift (index offset), and the running
// index k used while the tuple iterator walks it (§4.3).
type Tuple struct {
	Lower, Upper int
	Span         int
	Shift        int
	K            int // running index, valid only during an active walk
}

// Size returns the number of elements this dimension spans. An empty
// row still has Size 0 with Lower=1, Upper=0 (§8 boundary behaviour).
func (t Tuple) Size() int {
	if t.Upper < t.Lower {
		return 0
	}
	return t.Upper - t.Lower + 1
}

// Array is the ARRAY header of a row descriptor: element mode and
// size, slice/field offsets, and the handle the elements live in
// (§3 "ROW").
type Array struct {
	ElemMode   *tree.Mode
	ElemSize   int
	SliceOffset int
	FieldOffset int
	ArrayRef   *Handle // heap reference to the contiguous element storage
}

// Row is a complete row value: one Array header plus N Tuple
// dimensions.
type Row struct {
	Array  Array
	Tuples []Tuple
}

// Rank returns the row's dimensionality.
func (r *Row) Rank() int { return len(r.Tuples) }

// Elements returns the number of live elements, i.e.
// product_i row_size(tuple_i) (testable property 3, §8). It also
// reports whether the product overflowed the configured int range,
// per invariant 5.
func (r *Row) Elements() (n int, overflow bool) {
	n = 1
	for _, t := range r.Tuples {
		sz := t.Size()
		if sz == 0 {
			return 0, false
		}
		next := n * sz
		if n != 0 && next/n != sz {
			return 0, true
		}
		n = next
	}
	return n, false
}

// Offset computes the flat index of element (k_1..k_n) into
// r.Array.ArrayRef.Elems, per §4.3's algorithmic note:
//
//	base + element_size·(Σ spanᵢ·kᵢ − shift) + field_offset
//
// Per DESIGN NOTES' "Untyped byte copies" strategy, storage is a typed
// *Value slice rather than a raw byte buffer, so element_size folds
// out of the formula (every slot is one element) and what remains is
// the index arithmetic itself: shift is folded per-dimension into
// each tuple's Shift field, summed here exactly as the spec's formula
// subtracts one cumulative shift, and FieldOffset places a struct
// field's nested row within its parent's slots.
func (r *Row) Offset(indices []int) (int, bool) {
	if len(indices) != len(r.Tuples) {
		return 0, false
	}
	acc := 0
	shift := 0
	for i, t := range r.Tuples {
		k := indices[i]
		if k < t.Lower || k > t.Upper {
			return 0, false // INDEX_OUT_OF_BOUNDS, caller raises the diagnostic
		}
		acc += t.Span * k
		shift += t.Shift
	}
	return (acc - shift) + r.Array.FieldOffset, true
}

// GhostElement reports whether r is an empty row that still carries a
// dereferenceable ghost element, per §4.3's "Algorithmic notes":
// "The ghost-element invariant guarantees the base pointer is always
// dereferenceable even for empty rows."
func (r *Row) GhostElement() bool {
	n, _ := r.Elements()
	return n == 0 && r.Array.ArrayRef != nil
}

// NewEmptyRow builds the descriptor for an empty row display: lower=1,
// upper=0 in every dimension, with a ghost element allocated so the
// base pointer is never nil (§8 boundary behaviour).
func NewEmptyRow(elemMode *tree.Mode, elemSize, dims int, ghost *Handle) *Row {
	tuples := make([]Tuple, dims)
	span := 1
	for i := range tuples {
		tuples[i] = Tuple{Lower: 1, Upper: 0, Span: span}
		span *= 1
	}
	return &Row{
		Array:  Array{ElemMode: elemMode, ElemSize: elemSize, ArrayRef: ghost},
		Tuples: tuples,
	}
}
