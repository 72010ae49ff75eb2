package value

import "github.com/algol68/genie/tree"

// Discriminant names which of the three memory regions (§4.1) a REF
// targets.
type Discriminant uint8

const (
	DiscriminantHeap Discriminant = iota
	DiscriminantStack
	DiscriminantFrame
	DiscriminantNil
)

// Handle is the indirection every heap object is reached through: it
// owns the element storage, its size, mode and GC colour, and stays
// valid across compaction because references only ever store a
// *Handle plus an offset, never a raw address (§3 "Heap / Handles").
//
// Per DESIGN NOTES' "Untyped byte copies of row/struct payloads"
// strategy, storage is a slice of typed *Value slots rather than raw
// bytes: clone/store/move are derived, mode-aware Go functions
// (package stow) instead of a memcpy over an untyped buffer. ByteSize
// still tracks the C-level footprint the mode description would give
// the same object, purely for GC accounting and the monitor's `heap`/
// `sizes` commands.
type Handle struct {
	Elems    []*Value
	ByteSize int
	Mode     *tree.Mode
	Colour   GCColour
	Pinned   bool // block-GC flag, e.g. for permanent string literals
}

// GCColour is the mark-sweep colour carried on every handle.
type GCColour uint8

const (
	White GCColour = iota // candidate for collection
	Gray                  // reachable, children not yet scanned
	Black                 // reachable, fully scanned
)

// Ref is the runtime incarnation of a REF mode: a name (§3 "Name").
type Ref struct {
	Discriminant Discriminant
	Offset       int // byte offset from the handle/frame base
	Handle       *Handle
	FrameOffset  int // used when Discriminant is Frame/Stack
	Scope        int // lexical level, enforced by invariant 2

	// Nil is true for the Algol 68 NIL denotation, or an unassigned REF
	// variable (§8 round-trip law "IS NIL is true iff ...").
	Nil bool
}

// NewNilRef returns the REF value produced by the NIL denotation.
func NewNilRef(scope int) *Ref {
	return &Ref{Discriminant: DiscriminantNil, Nil: true, Scope: scope}
}

// SameAddress implements the IS/ISNT identity relation (§4.5): two
// REFs are identical iff they name the same storage, or both are NIL.
func (r *Ref) SameAddress(o *Ref) bool {
	if r.Nil || o.Nil {
		return r.Nil == o.Nil
	}
	return r.Handle == o.Handle && r.Offset == o.Offset &&
		r.FrameOffset == o.FrameOffset && r.Discriminant == o.Discriminant
}

// ScopeOK implements invariant 2: a REF's scope must be >= the scope
// of any value stored through it (an assignation may not let a
// younger value escape through an older name).
func (r *Ref) ScopeOK(sourceScope int) bool { return r.Scope >= sourceScope }
