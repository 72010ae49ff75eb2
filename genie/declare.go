package genie

import (
	"github.com/algol68/genie/stow"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// Declare implements the declaration kinds of §4.5: identity,
// variable, procedure and operator declarations bind a tag in the
// current frame's slot; MODE and PRIORITY declarations carry no
// runtime effect and only yield a zero value of the node's mode.
func Declare(ctx *Context, n *tree.Node) (*value.Value, error) {
	switch n.Attribute {
	case tree.AttrIdentityDecl:
		return declareIdentity(ctx, n)
	case tree.AttrVariableDecl:
		return declareVariable(ctx, n)
	case tree.AttrProcedureDecl:
		return declareProcedure(ctx, n)
	case tree.AttrOperatorDecl:
		return declareProcedure(ctx, n)
	case tree.AttrModeDecl, tree.AttrPriorityDecl:
		return value.Zero(n.Mode), nil
	default:
		return nil, raiseInternal("genie: node %d is not a declaration", n.ID)
	}
}

// declareIdentity binds `tag = value` (§4.5): the bound value is
// cloned if stowed, so later mutation of the source cannot alias into
// a CONSTANT identity.
func declareIdentity(ctx *Context, n *tree.Node) (*value.Value, error) {
	if n.Tag == nil {
		return nil, raiseInternal("genie: identity declaration node %d has no tag", n.ID)
	}
	child := n.Sub
	if child == nil {
		return nil, raiseInternal("genie: identity declaration node %d has no initialiser", n.ID)
	}
	v, err := Evaluate(ctx, child)
	if err != nil {
		return nil, err
	}
	if v.Mode != nil && v.Mode.IsStowed() {
		cloned, err := stow.Clone(ctx.Heap, v)
		if err != nil {
			return nil, err
		}
		v = cloned
	}
	v.MarkInit()
	ctx.CurrentFrame().Set(n.Tag.Offset, v)
	return v, nil
}

// declareVariable binds `tag` to a freshly generated LOC name,
// optionally initialised (§4.5 "Declarations"). A variable declaration
// with no initialiser leaves the name uninitialised (invariant 1 is
// enforced at the first dereference, not at declaration time).
func declareVariable(ctx *Context, n *tree.Node) (*value.Value, error) {
	if n.Tag == nil {
		return nil, raiseInternal("genie: variable declaration node %d has no tag", n.ID)
	}
	refMode := tree.NewRef(n.Tag.Mode)
	ref := value.Zero(refMode)
	ref.Kind = value.KindRef
	ref.Ref = &value.Ref{
		Discriminant: value.DiscriminantFrame,
		FrameOffset:  n.Tag.Offset,
		Scope:        ctx.CurrentFrame().Level(),
	}
	ref.MarkInit()
	ctx.CurrentFrame().Set(n.Tag.Offset, value.Zero(n.Tag.Mode))

	if child := n.Sub; child != nil {
		v, err := Evaluate(ctx, child)
		if err != nil {
			return nil, err
		}
		if v.Mode != nil && v.Mode.IsStowed() {
			cloned, err := stow.Clone(ctx.Heap, v)
			if err != nil {
				return nil, err
			}
			v = cloned
		}
		v.MarkInit()
		if err := WriteRef(ctx, ref.Ref, v); err != nil {
			return nil, err
		}
	}
	return ref, nil
}

// declareProcedure binds `tag` to a PROC value closing over the
// current frame (§4.5 "Procedure call" closure semantics); operator
// declarations are identical except their tag lives in the operator
// namespace (tree.TagOperator), which the mode checker already
// resolved before genie ever sees the node.
func declareProcedure(ctx *Context, n *tree.Node) (*value.Value, error) {
	if n.Tag == nil || n.Tag.Body == nil {
		return nil, raiseInternal("genie: procedure declaration node %d has no body", n.ID)
	}
	nParams := 0
	if n.Tag.Mode != nil {
		nParams = len(n.Tag.Mode.Params)
	}
	out := value.Zero(n.Tag.Mode)
	out.Kind = value.KindProc
	if nParams > 0 {
		out.Proc = value.NewPartial(n.Tag.Body, ctx.CurrentFrame(), nParams)
	} else {
		out.Proc = value.NewFull(n.Tag.Body, ctx.CurrentFrame())
	}
	out.MarkInit()
	ctx.CurrentFrame().Set(n.Tag.Offset, out)
	return out, nil
}
