package memory

import "github.com/algol68/genie/value"

// Heap is the top region of §4.1's contiguous buffer: a pool of
// handles reached only through value.Ref, so addresses stay valid
// across compaction (§3 "Heap / Handles").
type Heap struct {
	limit int
	used  int

	handles map[*value.Handle]struct{}

	// GCThreshold is the free-heap fraction (0..1) below which
	// preemptive collection fires (§4.1 "Preemptive GC fires when free
	// heap falls below a threshold").
	GCThreshold float64

	collections int
	reclaimed   int
}

// NewHeap allocates an empty heap with the given byte budget.
func NewHeap(limit int) *Heap {
	return &Heap{limit: limit, handles: make(map[*value.Handle]struct{}), GCThreshold: 0.1}
}

// Allocate claims storage for n elements (each counted as
// elemByteSize bytes for accounting purposes) and returns the new
// handle (GLOSSARY "birth at heap allocation").
func (h *Heap) Allocate(n, elemByteSize int, pinned bool) (*value.Handle, error) {
	size := n * elemByteSize
	if h.used+size > h.limit {
		return nil, ErrHeapExhausted
	}
	hd := &value.Handle{Elems: make([]*value.Value, n), ByteSize: size, Pinned: pinned}
	h.handles[hd] = struct{}{}
	h.used += size
	return hd, nil
}

// Used returns current heap usage in bytes, surfaced by the monitor's
// `heap` command (§6 CLI surface, §8 scenario 6).
func (h *Heap) Used() int { return h.used }

// Limit returns the heap's configured byte budget.
func (h *Heap) Limit() int { return h.limit }

// FreeFraction returns the proportion of the heap still free.
func (h *Heap) FreeFraction() float64 {
	if h.limit == 0 {
		return 0
	}
	return float64(h.limit-h.used) / float64(h.limit)
}

// NeedsCollection reports whether free heap has fallen below
// GCThreshold, i.e. whether a preemptive GC should run before the next
// allocation (§4.1).
func (h *Heap) NeedsCollection() bool { return h.FreeFraction() < h.GCThreshold }

// Stats is the snapshot the monitor's `heap`/`sizes` commands print
// (§6 CLI surface, SPEC_FULL.md "Heap statistics").
type Stats struct {
	Used, Limit   int
	LiveHandles   int
	Collections   int
	LastReclaimed int
}

// Snapshot returns the current heap statistics.
func (h *Heap) Snapshot() Stats {
	return Stats{
		Used: h.used, Limit: h.limit, LiveHandles: len(h.handles),
		Collections: h.collections, LastReclaimed: h.reclaimed,
	}
}
