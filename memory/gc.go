package memory

import "github.com/algol68/genie/value"

// Roots captures every exact GC root at a collection safe point
// (§4.1 "Exact roots"): handles reachable from live frames, the
// expression-stack contents (typed via Context.ExprModes — open
// question decision 2), and pinned handles.
type Roots struct {
	FrameValues []*value.Value
	ExprValues  []*value.Value
}

// Collect runs a cooperative mark-sweep pass over the heap. It is
// entered only at well-known safe points — clause boundaries and
// allocation (§4.1) — never preemptively inside a unit's evaluation,
// so no unit ever observes a partially-collected heap.
func (h *Heap) Collect(roots Roots) Stats {
	// mark
	marked := make(map[*value.Handle]bool, len(h.handles))
	var mark func(v *value.Value)
	mark = func(v *value.Value) {
		if v == nil {
			return
		}
		switch v.Kind {
		case value.KindRef:
			if v.Ref != nil && v.Ref.Handle != nil && !marked[v.Ref.Handle] {
				marked[v.Ref.Handle] = true
				v.Ref.Handle.Colour = value.Black
			}
		case value.KindRow:
			if v.Row != nil && v.Row.Array.ArrayRef != nil {
				hd := v.Row.Array.ArrayRef
				if !marked[hd] {
					marked[hd] = true
					hd.Colour = value.Black
				}
			}
		case value.KindStruct, value.KindUnion:
			for _, m := range v.Aggr {
				mark(m)
			}
		}
	}

	for _, v := range roots.FrameValues {
		mark(v)
	}
	for _, v := range roots.ExprValues {
		mark(v)
	}
	for hd := range h.handles {
		if hd.Pinned {
			marked[hd] = true
			hd.Colour = value.Black
		}
	}

	// sweep
	reclaimed := 0
	for hd := range h.handles {
		if !marked[hd] {
			h.used -= hd.ByteSize
			reclaimed += hd.ByteSize
			delete(h.handles, hd)
			continue
		}
		hd.Colour = value.White // ready for next cycle
	}

	h.collections++
	h.reclaimed = reclaimed
	return h.Snapshot()
}
