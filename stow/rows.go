package stow

import (
	"fmt"

	"github.com/algol68/genie/memory"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// MakeRow builds a 1-D row [1:len(elems)] holding elems in order;
// each element is cloned if it has rows (§4.3 "make_row").
func MakeRow(h *memory.Heap, elemMode *tree.Mode, elems []*value.Value) (*value.Value, error) {
	elemSize := elemMode.Size
	n := len(elems)
	count := n
	if count == 0 {
		count = 1
	}
	hd, err := h.Allocate(count, elemSize, false)
	if err != nil {
		return nil, err
	}
	row := &value.Row{
		Array:  value.Array{ElemMode: elemMode, ElemSize: elemSize, ArrayRef: hd},
		Tuples: []value.Tuple{{Lower: 1, Upper: n, Span: 1, Shift: 1}},
	}
	if n == 0 {
		row.Tuples[0] = value.Tuple{Lower: 1, Upper: 0, Span: 1}
	}
	dst := &value.Value{Kind: value.KindRow, Status: value.Init, Row: row}
	for i, e := range elems {
		if e.Mode != nil && e.Mode.IsStowed() {
			ce, err := Clone(h, e)
			if err != nil {
				return nil, err
			}
			e = ce
		}
		idx, _ := row.Offset([]int{1 + i})
		hd.Elems[idx] = e
	}
	return dst, nil
}

// MakeRowRow concatenates n equi-shaped rows into one row of higher
// rank; all inputs must share bounds (§4.3 "make_rowrow").
func MakeRowRow(h *memory.Heap, rows []*value.Value) (*value.Value, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("make_rowrow: no operands")
	}
	first := rows[0].Row
	for _, r := range rows[1:] {
		if !sameBounds(r.Row.Tuples, first.Tuples) {
			return nil, ErrDifferentBounds
		}
	}
	innerN, _ := first.Elements()
	elemSize := first.Array.ElemSize
	outer := len(rows)
	count := innerN * outer
	if count == 0 {
		count = 1
	}
	hd, err := h.Allocate(count, elemSize, false)
	if err != nil {
		return nil, err
	}
	tuples := append([]value.Tuple{{Lower: 1, Upper: outer, Span: innerN, Shift: innerN}}, first.Tuples...)
	dst := &value.Value{Kind: value.KindRow, Status: value.Init, Row: &value.Row{
		Array:  value.Array{ElemMode: first.Array.ElemMode, ElemSize: elemSize, ArrayRef: hd},
		Tuples: tuples,
	}}
	for i, r := range rows {
		base := i * innerN
		copy(hd.Elems[base:base+innerN], r.Row.Array.ArrayRef.Elems[:innerN])
	}
	return dst, nil
}

// MakeRefRowOfRow and MakeRefRowRow implement the rowing coercions on
// names (§4.3): they produce a descriptor whose only outer dimension
// is [1:1]. Rowing NIL yields NIL.
func MakeRefRowOfRow(h *memory.Heap, elemMode *tree.Mode, elem *value.Value) (*value.Value, error) {
	if elem.Kind == value.KindRef && elem.Ref != nil && elem.Ref.Nil {
		return elem, nil
	}
	return MakeRow(h, elemMode, []*value.Value{elem})
}

func MakeRefRowRow(h *memory.Heap, row *value.Value) (*value.Value, error) {
	if row.Kind == value.KindRef && row.Ref != nil && row.Ref.Nil {
		return row, nil
	}
	outer := value.Tuple{Lower: 1, Upper: 1, Span: 0}
	dst := &value.Value{Kind: value.KindRow, Status: value.Init, Row: &value.Row{
		Array:  row.Row.Array,
		Tuples: append([]value.Tuple{outer}, row.Row.Tuples...),
	}}
	return dst, nil
}

// Trimmer builds a new tuple given a [lower:upper@revised-lower] spec,
// adjusting shift so indices in the trimmed frame map to the same
// element as in the parent (§4.3 "trimmer").
func Trimmer(parent value.Tuple, lower, upper, revisedLower int) value.Tuple {
	delta := lower - revisedLower
	return value.Tuple{
		Lower: revisedLower,
		Upper: revisedLower + (upper - lower),
		Span:  parent.Span,
		Shift: parent.Shift - parent.Span*delta,
	}
}
