// Package prop implements C4, the dispatch cache: a per-node "PROP"
// (cached evaluator function + source pointer) that the interpreter
// writes on first visit and reuses on every subsequent visit
// (invariant 6: a cached PROP is semantically equivalent to generic
// evaluation of that node).
//
// Per DESIGN NOTES' "Self-modifying PROP on shared nodes" strategy,
// the cache lives in a side-table indexed by node id rather than as a
// mutable field on tree.Node, so nodes stay immutable and the cache's
// interior mutability is isolated to one map behind a mutex (atomic
// publishing). Grounded on the teacher's write-once promotion from
// `gen bltnGenerator` to `exec bltn` (interp.node, interp/interp.go),
// generalised from a struct field pair to an out-of-band cache.
package prop

import (
	"sync"

	"github.com/algol68/genie/tree"
)

// EvalFunc is the specialised or generic evaluator a PROP holds.
// Implemented by package genie; kept as an opaque function type here
// so prop never needs to import genie (genie imports prop instead).
type EvalFunc func(ctx any, n *tree.Node) (any, error)

// Prop is the cached dispatch record of §3/§4.4: an evaluator function
// plus the node it was specialised from (its "source").
type Prop struct {
	Eval   EvalFunc
	Source *tree.Node

	// Spec names which specialisation table entry (§4.4) this PROP
	// realises ("generic", "native", ...); it is a label only and does
	// not affect dispatch.
	Spec string
}

// Cache is the per-tree side-table of node id -> Prop.
type Cache struct {
	mu      sync.RWMutex
	entries map[int]*Prop
}

// NewCache allocates an empty dispatch cache for one compilation unit.
func NewCache() *Cache {
	return &Cache{entries: make(map[int]*Prop)}
}

// Get returns the PROP installed for n, if any.
func (c *Cache) Get(n *tree.Node) (*Prop, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[n.ID]
	return p, ok
}

// Install writes the PROP for n. It is write-once per node except
// when the code generator promotes a node to native dispatch (§3 "PROP
// cache entries... invalidated only by the code generator promoting a
// node to native dispatch"), which calls Install again deliberately.
func (c *Cache) Install(n *tree.Node, p *Prop) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[n.ID] = p
}

// Promote overwrites n's PROP with a native evaluator from codegen,
// the one sanctioned re-installation (§4.6 "Call-in").
func (c *Cache) Promote(n *tree.Node, p *Prop) { c.Install(n, p) }

// Len reports how many nodes currently have a cached PROP, used by
// the monitor's `sizes` command.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
