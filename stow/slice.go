package stow

import "github.com/algol68/genie/value"

// Slice implements multi-dimensional subscripting: bounds-checks each
// index against its tuple and returns the addressed element, or
// ErrIndexOutOfBounds on violation (§4.3 "slice").
func Slice(row *value.Value, indices []int) (*value.Value, error) {
	idx, ok := row.Row.Offset(indices)
	if !ok {
		return nil, ErrIndexOutOfBounds
	}
	return row.Row.Array.ArrayRef.Elems[idx], nil
}

// SetSlice writes v into the element addressed by indices, used by
// assignation through a slice (§4.5 "Assignment").
func SetSlice(row *value.Value, indices []int, v *value.Value) error {
	idx, ok := row.Row.Offset(indices)
	if !ok {
		return ErrIndexOutOfBounds
	}
	row.Row.Array.ArrayRef.Elems[idx] = v
	return nil
}

// Trim builds a trimmed (sub-range) view of row along each dimension
// given a lower/upper/revisedLower triple per dimension (nil entries
// keep that dimension's full parent bounds). The returned row shares
// the parent's handle — a trim is descriptor-only (§4.3 "trimmer").
func Trim(row *value.Value, specs []*TrimSpec) *value.Value {
	newTuples := make([]value.Tuple, len(row.Row.Tuples))
	for i, t := range row.Row.Tuples {
		if specs[i] == nil {
			newTuples[i] = t
			continue
		}
		s := specs[i]
		newTuples[i] = Trimmer(t, s.Lower, s.Upper, s.RevisedLower)
	}
	return &value.Value{
		Kind: value.KindRow, Mode: row.Mode, Status: row.Status,
		Row: &value.Row{Array: row.Row.Array, Tuples: newTuples},
	}
}

// TrimSpec is one dimension's [lower:upper@revised-lower] trim
// request.
type TrimSpec struct {
	Lower, Upper, RevisedLower int
}
