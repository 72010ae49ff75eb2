// Package genie implements C5, the interpreter core: the generic
// tree-walking evaluator that C4's PROP cache specialises over time.
// Grounded on the teacher's interp.Interpreter/interp.node.Walk shape
// (interp/interp.go), generalised from Go-reflection dispatch to the
// mode-driven dispatch §4.5 describes.
package genie

import (
	"github.com/algol68/genie/diag"
	"github.com/algol68/genie/memory"
	"github.com/algol68/genie/prop"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// BreakHook is called whenever Evaluate visits a node carrying one of
// the six §4.7 breakpoint status bits; package monitor installs this
// to re-enter its REPL at the failing/breaked node. A nil hook means
// breakpoints are never honoured (e.g. running without --debug).
type BreakHook func(ctx *Context, n *tree.Node) error

// Context is the interpreter's running state: the memory regions of
// C1, the PROP cache of C4, and the optional monitor hook of C7. One
// Context exists per program run (§4.1 "Pervasive process-wide mutable
// state" is deliberately not a package global, it is this struct).
type Context struct {
	*memory.Context

	Cache *prop.Cache

	// Break is consulted on every node whose Status carries a
	// tree.BreakpointMask bit.
	Break BreakHook

	// Standenv resolves operator/procedure tags installed by the
	// standard environment (package standenv wires this in at startup).
	Standenv map[string]*value.Proc

	// Optimise gates whether Evaluate ever consults codegen's
	// eligibility predicate before falling back to generic dispatch
	// (set by cmd/genie's -O flag, §4.6).
	Optimise bool

	// TryNative, when Optimise is set, asks codegen for a compiled PROP
	// before generic dispatch runs. Left nil when codegen's plugin
	// backend is unavailable (pure interpretation mode).
	TryNative func(ctx *Context, n *tree.Node) (*prop.Prop, bool)
}

// NewContext builds a fresh interpreter context with a heap/stack
// budget of limit bytes.
func NewContext(limit int) *Context {
	return &Context{
		Context:  memory.NewContext(limit),
		Cache:    prop.NewCache(),
		Standenv: make(map[string]*value.Proc),
	}
}

// CurrentFrame is a small convenience wrapper so genie's files read
// ctx.CurrentFrame() rather than reaching into the embedded
// memory.Context directly everywhere.
func (c *Context) CurrentFrame() *memory.Frame { return c.Frames }

// PushFrame makes f the new current frame.
func (c *Context) PushFrame(f *memory.Frame) { c.Frames = f }

// PopFrame restores the dynamic caller as current, mirroring a
// procedure return or a closed-clause exit (§4.1).
func (c *Context) PopFrame() {
	if c.Frames != nil {
		c.Frames = c.Frames.Dynamic
	}
}

// raiseInternal builds the §7 internal-consistency diagnostic used
// when genie reaches a state the mode checker should have ruled out.
func raiseInternal(format string, args ...any) error {
	return diag.Fatalf(format, args...)
}
