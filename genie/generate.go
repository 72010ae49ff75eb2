package genie

import (
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// Generate implements LOC and HEAP generators (§3 "Heap / Handles",
// GLOSSARY "birth at heap allocation"): LOC opens a new slot in the
// current frame, HEAP allocates a one-element handle from the heap.
// Both return a freshly scoped, uninitialised REF (invariant 1: the
// generator itself never marks the name's target initialised).
func Generate(ctx *Context, n *tree.Node) (*value.Value, error) {
	target := n.Mode.Of
	if target == nil {
		return nil, raiseInternal("genie: generator node %d has no target mode", n.ID)
	}

	if n.Symbol == "HEAP" {
		return generateHeap(ctx, n, target)
	}
	return generateLoc(ctx, n, target)
}

func generateLoc(ctx *Context, n *tree.Node, target *tree.Mode) (*value.Value, error) {
	frame := ctx.CurrentFrame()
	offset := n.Info.Offset
	frame.Set(offset, value.Zero(target))

	out := value.Zero(n.Mode)
	out.Kind = value.KindRef
	out.Ref = &value.Ref{
		Discriminant: value.DiscriminantFrame,
		FrameOffset:  offset,
		Scope:        frame.Level(),
	}
	out.MarkInit()
	return out, nil
}

func generateHeap(ctx *Context, n *tree.Node, target *tree.Mode) (*value.Value, error) {
	hd, err := ctx.Heap.Allocate(1, target.Size, false)
	if err != nil {
		return nil, err
	}
	hd.Mode = target
	hd.Elems[0] = value.Zero(target)

	out := value.Zero(n.Mode)
	out.Kind = value.KindRef
	out.Ref = &value.Ref{
		Discriminant: value.DiscriminantHeap,
		Handle:       hd,
		Offset:       0,
		// HEAP names outlive the generating frame (GLOSSARY "Heap
		// generator"): scope 0 is the outermost/global scope, so
		// invariant 2 never blocks storing a HEAP name's result upward.
		Scope: 0,
	}
	out.MarkInit()
	return out, nil
}
