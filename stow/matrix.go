package stow

import (
	"fmt"

	"github.com/algol68/genie/value"
)

// ErrNotMatrix is returned when Diagonal/Transpose/Row/Column are
// applied to a row whose rank is not 2.
var ErrNotMatrix = fmt.Errorf("operand is not a two-dimensional row")

func matrixTuples(row *value.Value) (value.Tuple, value.Tuple, error) {
	if row.Row.Rank() != 2 {
		return value.Tuple{}, value.Tuple{}, ErrNotMatrix
	}
	return row.Row.Tuples[0], row.Row.Tuples[1], nil
}

// Transpose swaps a matrix's two dimensions, descriptor-only (§4.3
// "diagonal / transpose / row / column functions"): "no element
// copying". Transpose∘Transpose is the identity on the descriptor (§8
// round-trip law), verified by swapping the tuple order twice
// returning the original slice order and the same ArrayRef pointer.
func Transpose(row *value.Value) (*value.Value, error) {
	r, c, err := matrixTuples(row)
	if err != nil {
		return nil, err
	}
	return &value.Value{
		Kind: value.KindRow, Mode: row.Mode, Status: row.Status,
		Row: &value.Row{Array: row.Row.Array, Tuples: []value.Tuple{c, r}},
	}, nil
}

// Diagonal returns the 1-D row of elements (i,i) of a square matrix.
func Diagonal(row *value.Value) (*value.Value, error) {
	r, c, err := matrixTuples(row)
	if err != nil {
		return nil, err
	}
	if r.Size() != c.Size() {
		return nil, fmt.Errorf("diagonal: not square")
	}
	diag := value.Tuple{Lower: r.Lower, Upper: r.Upper, Span: r.Span + c.Span, Shift: r.Shift + c.Shift}
	return &value.Value{
		Kind: value.KindRow, Mode: row.Mode, Status: row.Status,
		Row: &value.Row{Array: row.Row.Array, Tuples: []value.Tuple{diag}},
	}, nil
}

// Row returns the 1-D sub-row fixing the matrix's first index to i.
func Row(rowVal *value.Value, i int) (*value.Value, error) {
	r, c, err := matrixTuples(rowVal)
	if err != nil {
		return nil, err
	}
	if i < r.Lower || i > r.Upper {
		return nil, ErrIndexOutOfBounds
	}
	shift := r.Shift + c.Shift - r.Span*i
	return &value.Value{
		Kind: value.KindRow, Mode: rowVal.Mode, Status: rowVal.Status,
		Row: &value.Row{Array: rowVal.Row.Array, Tuples: []value.Tuple{{Lower: c.Lower, Upper: c.Upper, Span: c.Span, Shift: shift}}},
	}, nil
}

// Column returns the 1-D sub-row fixing the matrix's second index to j.
func Column(rowVal *value.Value, j int) (*value.Value, error) {
	r, c, err := matrixTuples(rowVal)
	if err != nil {
		return nil, err
	}
	if j < c.Lower || j > c.Upper {
		return nil, ErrIndexOutOfBounds
	}
	shift := r.Shift + c.Shift - c.Span*j
	return &value.Value{
		Kind: value.KindRow, Mode: rowVal.Mode, Status: rowVal.Status,
		Row: &value.Row{Array: rowVal.Row.Array, Tuples: []value.Tuple{{Lower: r.Lower, Upper: r.Upper, Span: r.Span, Shift: shift}}},
	}, nil
}
