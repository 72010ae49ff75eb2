package genie

import (
	"github.com/algol68/genie/diag"
	"github.com/algol68/genie/stow"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// Coerce applies the single strict coercion an AttrCoercion node
// records in Info.CoerceKind (§4.5 "Coercion pipeline"). Algol 68's
// seven coercions are never composed on one node; the mode checker
// already inserted a chain of single-coercion nodes where more than
// one is needed, so Coerce only ever does one step.
func Coerce(ctx *Context, n *tree.Node) (*value.Value, error) {
	child := n.Sub
	if child == nil {
		return nil, raiseInternal("genie: coercion node %d has no operand", n.ID)
	}
	operand, err := Evaluate(ctx, child)
	if err != nil {
		return nil, err
	}

	switch n.Info.CoerceKind {
	case tree.CoerceVoiding:
		return value.Zero(n.Mode), nil

	case tree.CoerceDereferencing:
		return Deref(ctx, operand)

	case tree.CoerceWidening:
		return widen(n.Mode, operand)

	case tree.CoerceUniting:
		out := value.Zero(n.Mode)
		out.Kind = value.KindUnion
		out.Aggr = map[string]*value.Value{"$": operand}
		out.MarkInit()
		return out, nil

	case tree.CoerceRowing:
		if operand.Kind == value.KindRef {
			return stow.MakeRefRowOfRow(ctx.Heap, n.Mode.Of, operand)
		}
		return stow.MakeRow(ctx.Heap, n.Mode.Of, []*value.Value{operand})

	case tree.CoerceDeproceduring:
		return callDeferred(ctx, operand)

	case tree.CoerceProceduring:
		out := value.Zero(n.Mode)
		out.Kind = value.KindProc
		out.Proc = value.NewFull(child, nil)
		out.MarkInit()
		return out, nil

	default:
		return nil, raiseInternal("genie: coercion node %d has CoerceNone", n.ID)
	}
}

// Deref implements the dereferencing coercion (§4.5): following a REF
// down to its named value, raising NIL_DEREFERENCE if the name is NIL.
func Deref(ctx *Context, ref *value.Value) (*value.Value, error) {
	if ref.Kind != value.KindRef {
		return ref, nil
	}
	if ref.Ref.Nil {
		return nil, diag.New(diag.SeverityRuntime, diag.CategoryNilDereference,
			"dereferencing NIL")
	}
	v, err := ReadRef(ctx, ref.Ref)
	if err != nil {
		return nil, err
	}
	if v == nil || !v.IsInit() {
		return nil, diag.New(diag.SeverityRuntime, diag.CategoryUninitialisedRead,
			"dereferenced value not yet initialised")
	}
	return v, nil
}

// ReadRef resolves r to the *value.Value it names, across all three
// discriminants of §3 "Heap / Handles".
func ReadRef(ctx *Context, r *value.Ref) (*value.Value, error) {
	switch r.Discriminant {
	case value.DiscriminantHeap:
		if r.Offset < 0 || r.Offset >= len(r.Handle.Elems) {
			return nil, diag.New(diag.SeverityRuntime, diag.CategoryBoundsViolation,
				"REF offset out of range")
		}
		return r.Handle.Elems[r.Offset], nil
	case value.DiscriminantFrame, value.DiscriminantStack:
		f := ctx.CurrentFrame().At(ctx.CurrentFrame().LexLevel - r.Scope)
		if f == nil {
			return nil, raiseInternal("genie: REF targets a frame above the current chain")
		}
		return f.Get(r.FrameOffset), nil
	default:
		return nil, diag.New(diag.SeverityRuntime, diag.CategoryNilDereference, "dereferencing NIL")
	}
}

// WriteRef stores v at the location r names, the write half of
// ReadRef, shared by Assign and by generator initialisation.
func WriteRef(ctx *Context, r *value.Ref, v *value.Value) error {
	switch r.Discriminant {
	case value.DiscriminantHeap:
		if r.Offset < 0 || r.Offset >= len(r.Handle.Elems) {
			return diag.New(diag.SeverityRuntime, diag.CategoryBoundsViolation,
				"REF offset out of range")
		}
		r.Handle.Elems[r.Offset] = v
		return nil
	case value.DiscriminantFrame, value.DiscriminantStack:
		f := ctx.CurrentFrame().At(ctx.CurrentFrame().LexLevel - r.Scope)
		if f == nil {
			return raiseInternal("genie: REF targets a frame above the current chain")
		}
		f.Set(r.FrameOffset, v)
		return nil
	default:
		return diag.New(diag.SeverityRuntime, diag.CategoryNilDereference, "assigning through NIL")
	}
}

// widen implements the numeric widenings INT -> REAL, REAL -> COMPLEX
// and INT -> COMPLEX. No other widening is handled (not the LONG
// promotions, BITS -> []BOOL or BYTES -> []CHAR); any other target
// raises an internal error.
func widen(target *tree.Mode, v *value.Value) (*value.Value, error) {
	out := value.Zero(target)
	switch {
	case v.Kind == value.KindInt && out.Kind == value.KindReal:
		out.R = float64(v.I)
	case v.Kind == value.KindReal && out.Kind == value.KindComplex:
		out.Cx = value.Complex{Re: v.R}
	case v.Kind == value.KindInt && out.Kind == value.KindComplex:
		out.Cx = value.Complex{Re: float64(v.I)}
	default:
		return nil, raiseInternal("genie: unsupported widening to %s", target)
	}
	out.MarkInit()
	return out, nil
}
