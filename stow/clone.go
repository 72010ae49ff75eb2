// Package stow implements C3, the stowed-object engine: deep/shallow
// copying, construction and descriptor algebra for rows, structs and
// unions. Every operation here is grounded directly in §4.3's
// algorithmic notes, since the teacher (a Go-source interpreter) has
// no analogous concept — Go has no stowed/multi-dimensional value
// semantics to imitate structurally.
package stow

import (
	"fmt"

	"github.com/algol68/genie/memory"
	"github.com/algol68/genie/value"
)

// ErrDifferentBounds is the §4.3/§7 "DIFFERENT_BOUNDS" runtime error,
// raised when Store's destination and source descriptors disagree.
var ErrDifferentBounds = fmt.Errorf("DIFFERENT_BOUNDS")

// ErrIndexOutOfBounds is §7's bounds-violation category for slicing.
var ErrIndexOutOfBounds = fmt.Errorf("INDEX_OUT_OF_BOUNDS")

// Clone deep-copies structs, unions, [FLEX] rows and SOUND values,
// returning a fresh heap-backed value (§4.3 "clone"). Arrays may be
// non-contiguous; the walk below follows the tuple iterator the spec
// describes: "initialise k to lower, step, carry on upper".
func Clone(h *memory.Heap, src *value.Value) (*value.Value, error) {
	if src == nil {
		return nil, nil
	}
	switch src.Kind {
	case value.KindRow:
		return cloneRow(h, src)
	case value.KindStruct, value.KindUnion:
		return cloneAggregate(h, src)
	default:
		return src.Copy(), nil
	}
}

func cloneRow(h *memory.Heap, src *value.Value) (*value.Value, error) {
	n, overflow := src.Row.Elements()
	if overflow {
		return nil, fmt.Errorf("row span overflow")
	}

	dstTuples := make([]value.Tuple, len(src.Row.Tuples))
	copy(dstTuples, src.Row.Tuples)

	elemSize := src.Row.Array.ElemSize
	count := n
	if count == 0 {
		// Empty rows still materialise a ghost element so descriptors
		// remain well-formed (§4.3).
		count = 1
	}
	hd, err := h.Allocate(count, elemSize, false)
	if err != nil {
		return nil, err
	}

	dst := &value.Value{Kind: value.KindRow, Mode: src.Mode, Status: value.Init}
	dst.Row = &value.Row{
		Array: value.Array{
			ElemMode: src.Row.Array.ElemMode, ElemSize: elemSize,
			FieldOffset: src.Row.Array.FieldOffset, ArrayRef: hd,
		},
		Tuples: dstTuples,
	}

	if n == 0 {
		return dst, nil
	}

	// Tuple iterator: initialise k to lower in every dimension, step
	// the last dimension first, carrying into earlier dimensions on
	// overflow (§4.3).
	idx := make([]int, len(dstTuples))
	for i, t := range dstTuples {
		idx[i] = t.Lower
	}
	for i := 0; i < n; i++ {
		srcIdx, ok := src.Row.Offset(idx)
		if !ok {
			return nil, ErrIndexOutOfBounds
		}
		dstIdx, _ := dst.Row.Offset(idx)
		elem := src.Row.Array.ArrayRef.Elems[srcIdx]
		if elem != nil && elem.Mode != nil && elem.Mode.IsStowed() {
			ce, err := Clone(h, elem)
			if err != nil {
				return nil, err
			}
			elem = ce
		}
		hd.Elems[dstIdx] = elem

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] <= dstTuples[d].Upper {
				break
			}
			idx[d] = dstTuples[d].Lower
		}
	}
	return dst, nil
}

func cloneAggregate(h *memory.Heap, src *value.Value) (*value.Value, error) {
	dst := &value.Value{Kind: src.Kind, Mode: src.Mode, Status: value.Init, Aggr: make(map[string]*value.Value, len(src.Aggr))}
	for k, m := range src.Aggr {
		cm, err := Clone(h, m)
		if err != nil {
			return nil, err
		}
		dst.Aggr[k] = cm
	}
	return dst, nil
}
