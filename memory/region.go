// Package memory implements C1: the frame stack, expression stack and
// heap, plus the handle pool and its mark-sweep collector. The three
// regions are separate Go structures, not slices of one contiguous
// buffer. Generalised from the teacher's single reflect.Value-backed
// frame (interp.frame, interp/interp.go) to the three regions of §4.1, per
// DESIGN NOTES "Pervasive process-wide mutable state": all of it is
// carried as fields of one *Context value instead of process globals.
package memory

import (
	"fmt"

	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// Overhead is the reserved "storage overhead" margin (§4.1) that
// triggers a soft-overflow diagnostic before hard exhaustion.
const Overhead = 4096

// ErrStackOverflow and ErrHeapExhausted are the §7 "Stack overflow"/
// "heap exhaustion" runtime-error categories.
var (
	ErrStackOverflow  = fmt.Errorf("frame/expression stack overflow")
	ErrHeapExhausted  = fmt.Errorf("heap exhaustion")
	ErrSoftOverflow   = fmt.Errorf("storage overhead margin exceeded")
)

// Context is the explicit interpreter context threaded through every
// evaluation, replacing the pervasive process-wide mutable state the
// original C implementation relies on.
type Context struct {
	limit int // byte budget shared by the frame and expression stacks

	frameTop int // high-water mark of the frame stack
	exprTop  int // high-water mark of the expression stack
	heapUsed int // bytes currently claimed by live handles

	// ExprModes is the parallel slice pushed alongside every
	// expression-stack value, recording the Mode that pushed it — the
	// answer to SPEC_FULL.md open-question decision 2, so GC root
	// walking never has to infer a pushed word's type.
	ExprModes []*tree.Mode
	ExprStack []*value.Value

	Frames *Frame // current top frame

	Heap *Heap
}

// NewContext allocates a Context with the given byte budget. The frame
// and expression stacks share that one budget (see CheckOverflow); the
// heap is given a separate budget of the same size. The budget is not
// split into regions of one shared buffer.
func NewContext(limit int) *Context {
	return &Context{
		limit: limit,
		Heap:  NewHeap(limit),
	}
}

// CheckOverflow returns ErrSoftOverflow once the combined frame and
// expression stack usage crosses into the reserved overhead margin,
// and ErrStackOverflow once it would exceed the configured limit
// entirely.
func (c *Context) CheckOverflow(grow int) error {
	used := c.frameTop + c.exprTop + grow
	if used > c.limit {
		return ErrStackOverflow
	}
	if used > c.limit-Overhead {
		return ErrSoftOverflow
	}
	return nil
}

// PushExpr pushes v of mode m onto the expression stack, used for
// argument passing and intermediate results (§4.1).
func (c *Context) PushExpr(v *value.Value, m *tree.Mode) error {
	if err := c.CheckOverflow(1); err != nil && err != ErrSoftOverflow {
		return err
	}
	c.ExprStack = append(c.ExprStack, v)
	c.ExprModes = append(c.ExprModes, m)
	c.exprTop = len(c.ExprStack)
	return nil
}

// PopExpr pops and returns the top expression-stack value.
func (c *Context) PopExpr() (*value.Value, *tree.Mode, bool) {
	n := len(c.ExprStack)
	if n == 0 {
		return nil, nil, false
	}
	v, m := c.ExprStack[n-1], c.ExprModes[n-1]
	c.ExprStack = c.ExprStack[:n-1]
	c.ExprModes = c.ExprModes[:n-1]
	c.exprTop = len(c.ExprStack)
	return v, m, true
}

// ExprDepth returns the current number of values on the expression
// stack, used by testable property 6 (sp_after - sp_before checks).
func (c *Context) ExprDepth() int { return len(c.ExprStack) }
