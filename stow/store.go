package stow

import "github.com/algol68/genie/value"

// Store element-wise copies src into an existing destination
// descriptor dst. Bounds of dst and src must match exactly; a mismatch
// is the §4.3/§7 DIFFERENT_BOUNDS error (§4.3 "store").
func Store(dst, src *value.Value) error {
	if dst == nil || src == nil {
		return nil
	}
	switch dst.Kind {
	case value.KindRow:
		return storeRow(dst, src)
	case value.KindStruct, value.KindUnion:
		return storeAggregate(dst, src)
	default:
		*dst = *src
		return nil
	}
}

func sameBounds(a, b []value.Tuple) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Lower != b[i].Lower || a[i].Upper != b[i].Upper {
			return false
		}
	}
	return true
}

func storeRow(dst, src *value.Value) error {
	if !sameBounds(dst.Row.Tuples, src.Row.Tuples) {
		return ErrDifferentBounds
	}
	n, overflow := dst.Row.Elements()
	if overflow {
		return ErrIndexOutOfBounds
	}
	if n == 0 {
		return nil
	}
	idx := make([]int, len(dst.Row.Tuples))
	for i, t := range dst.Row.Tuples {
		idx[i] = t.Lower
	}
	for i := 0; i < n; i++ {
		so, ok := src.Row.Offset(idx)
		if !ok {
			return ErrIndexOutOfBounds
		}
		do, ok := dst.Row.Offset(idx)
		if !ok {
			return ErrIndexOutOfBounds
		}
		dst.Row.Array.ArrayRef.Elems[do] = src.Row.Array.ArrayRef.Elems[so]
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] <= dst.Row.Tuples[d].Upper {
				break
			}
			idx[d] = dst.Row.Tuples[d].Lower
		}
	}
	return nil
}

func storeAggregate(dst, src *value.Value) error {
	if len(dst.Aggr) != len(src.Aggr) {
		return ErrDifferentBounds
	}
	for k, sv := range src.Aggr {
		dv, ok := dst.Aggr[k]
		if !ok {
			return ErrDifferentBounds
		}
		if err := Store(dv, sv); err != nil {
			return err
		}
	}
	return nil
}
