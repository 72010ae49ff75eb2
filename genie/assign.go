package genie

import (
	"github.com/algol68/genie/diag"
	"github.com/algol68/genie/stow"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// Assign implements assignation (§4.5 "Assignment"): the destination
// evaluates to a REF, the scope of that REF must be >= the scope of
// the value being stored (invariant 2), and stowed-moded values go
// through stow.Store's deep copy rather than a pointer assignment
// (§4.3 "store").
func Assign(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	if len(children) != 2 {
		return nil, raiseInternal("genie: assignation node %d malformed", n.ID)
	}
	dst, err := Evaluate(ctx, children[0])
	if err != nil {
		return nil, err
	}
	if dst.Kind != value.KindRef {
		return nil, raiseInternal("genie: assignation destination on node %d is not a REF", n.ID)
	}
	if dst.Ref.Nil {
		return nil, diag.New(diag.SeverityRuntime, diag.CategoryNilDereference,
			"assigning through NIL")
	}

	src, err := Evaluate(ctx, children[1])
	if err != nil {
		return nil, err
	}

	sourceScope := ctx.CurrentFrame().Level()
	if src.Kind == value.KindRef {
		sourceScope = src.Ref.Scope
	}
	if !dst.Ref.ScopeOK(sourceScope) {
		return nil, diag.New(diag.SeverityRuntime, diag.CategoryScopeViolation,
			"assigning a value of scope %d through a name of scope %d", sourceScope, dst.Ref.Scope)
	}

	stored := src
	if src.Mode != nil && src.Mode.IsStowed() {
		existing, err := ReadRef(ctx, dst.Ref)
		if err == nil && existing != nil && existing.Kind == value.KindRow && src.Kind == value.KindRow {
			if err := stow.Store(existing, src); err != nil {
				return nil, diag.New(diag.SeverityRuntime, diag.CategoryDifferentBounds, "%v", err)
			}
			stored = existing
		} else {
			cloned, err := stow.Clone(ctx.Heap, src)
			if err != nil {
				return nil, err
			}
			stored = cloned
		}
	}
	stored.MarkInit()

	if err := WriteRef(ctx, dst.Ref, stored); err != nil {
		return nil, err
	}
	return dst, nil
}
