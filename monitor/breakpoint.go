// Package monitor implements C7: an interactive debugger that
// re-enters the interpreter at a breaked node, prefix-abbreviated
// command dispatch, and a REPL loop over a TTY-detected input stream.
// Grounded on the teacher's `node.setBreakOnLine`/`setBreakOnCall`/
// `shouldBreak` and `Interpreter.REPL`/`doPrompt`/`getPrompt`
// (interp/interp.go), generalised from two booleans to §4.7's six-bit
// breakpoint mask and from "evaluate Go source lines" to "evaluate
// monitor commands against a live frame".
package monitor

import "github.com/algol68/genie/tree"

// Set tracks which nodes carry which of §4.7's six breakpoint kinds,
// a side-table the same way package prop keeps the PROP cache
// out-of-band, so tree.Node itself never needs mutable debug fields.
type Set struct {
	marks map[int]tree.Status
}

// NewSet allocates an empty breakpoint set.
func NewSet() *Set { return &Set{marks: make(map[int]tree.Status)} }

// SetBreak marks n with kind (one of tree.StatusBreakpoint*),
// generalising the teacher's setBreakOnLine(true)/setBreakOnCall(true)
// pair to any of the six §4.7 kinds.
func (s *Set) SetBreak(n *tree.Node, kind tree.Status) {
	s.marks[n.ID] = s.marks[n.ID].Set(kind)
	n.Status = n.Status.Set(kind)
}

// ClearBreak removes kind from n, the generalisation of
// setBreakOnLine(false).
func (s *Set) ClearBreak(n *tree.Node, kind tree.Status) {
	s.marks[n.ID] = s.marks[n.ID].Clear(kind)
	n.Status = n.Status.Clear(kind)
}

// ShouldBreak reports whether n carries any of the six breakpoint
// kinds, the direct generalisation of node.shouldBreak().
func (s *Set) ShouldBreak(n *tree.Node) bool {
	return n.Status.Any(tree.BreakpointMask)
}

// Kinds returns the breakpoint kinds currently marked on n's id.
func (s *Set) Kinds(id int) tree.Status {
	return s.marks[id]
}

// Watch is a watchpoint: a tag whose frame slot the monitor checks for
// change on every breakable node (§4.7 "watchpoint"), since a
// watchpoint is not a fixed tree location the way a line/call
// breakpoint is.
type Watch struct {
	Tag       *tree.Tag
	lastValue string // rendered snapshot, compared by Changed
}

// NewWatch arms a watchpoint on tag.
func NewWatch(tag *tree.Tag) *Watch { return &Watch{Tag: tag} }

// Changed reports whether rendered differs from the last snapshot,
// updating the snapshot as a side effect (one check per call, matching
// how the monitor polls it once per breakable node visit).
func (w *Watch) Changed(rendered string) bool {
	changed := rendered != w.lastValue
	w.lastValue = rendered
	return changed
}
