package genie

import (
	"github.com/algol68/genie/diag"
	"github.com/algol68/genie/stow"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// evalFormula evaluates a monadic or dyadic operator application by
// resolving the operator tag to a standenv (or user-defined) PROC
// value and invoking it, exactly like a call node with an implicit
// operator-identifier operand (§4.5 "Formula").
func evalFormula(ctx *Context, n *tree.Node) (*value.Value, error) {
	if n.Tag == nil {
		return nil, raiseInternal("genie: formula node %d has no operator tag", n.ID)
	}
	children := n.Children()
	args := make([]*value.Value, 0, len(children))
	for _, c := range children {
		v, err := Evaluate(ctx, c)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	key := n.Tag.Name + ":" + n.Tag.Mode.ShortID
	if len(children) == 1 {
		key += ".monadic"
	}
	proc, ok := ctx.Standenv[key]
	if !ok {
		proc, ok = ctx.Standenv[n.Tag.Name+":"+n.Tag.Mode.ShortID]
	}
	if !ok {
		proc, ok = ctx.Standenv[n.Tag.Name]
	}
	if !ok || proc.Standenv == nil {
		return nil, raiseInternal("genie: operator %s has no standenv implementation", n.Tag.Name)
	}
	return proc.Standenv(args)
}

// evalSlice implements row subscripting (§4.3 "slice"). The operand is
// dereferenced if it is a REF, and a slice with one index per
// dimension yields the addressed element value. Trimming is not
// handled here: a slice with fewer indices than the row's rank raises
// an internal error.
func evalSlice(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	if len(children) == 0 {
		return nil, raiseInternal("genie: slice node %d has no operand", n.ID)
	}
	operand, err := Evaluate(ctx, children[0])
	if err != nil {
		return nil, err
	}
	row := operand
	if row.Kind == value.KindRef {
		row, err = Deref(ctx, operand)
		if err != nil {
			return nil, err
		}
	}
	if row.Kind != value.KindRow {
		return nil, raiseInternal("genie: slice operand on node %d is not a ROW", n.ID)
	}

	indices := make([]int, 0, len(children)-1)
	for _, c := range children[1:] {
		iv, err := Evaluate(ctx, c)
		if err != nil {
			return nil, err
		}
		indices = append(indices, int(iv.I))
	}

	if len(indices) != row.Row.Rank() {
		// Partial subscripting (a trim) is not supported by this
		// evaluator; nothing here calls stow.Trim.
		return nil, raiseInternal("genie: slice node %d supplied %d of %d indices", n.ID, len(indices), row.Row.Rank())
	}

	elem, err := stow.Slice(row, indices)
	if err != nil {
		return nil, diag.New(diag.SeverityRuntime, diag.CategoryBoundsViolation, "%v", err)
	}
	return elem, nil
}

// evalSelection implements struct field selection (§3 "STRUCT with
// ordered named fields").
func evalSelection(ctx *Context, n *tree.Node) (*value.Value, error) {
	child := n.Sub
	if child == nil {
		return nil, raiseInternal("genie: selection node %d has no operand", n.ID)
	}
	operand, err := Evaluate(ctx, child)
	if err != nil {
		return nil, err
	}
	aggr := operand
	if aggr.Kind == value.KindRef {
		aggr, err = Deref(ctx, operand)
		if err != nil {
			return nil, err
		}
	}
	if aggr.Kind != value.KindStruct {
		return nil, raiseInternal("genie: selection operand on node %d is not a STRUCT", n.ID)
	}
	v, ok := aggr.Aggr[n.Symbol]
	if !ok {
		return nil, raiseInternal("genie: struct has no field %q", n.Symbol)
	}
	return v, nil
}

// evalCollateralDisplay builds a ROW or STRUCT display value from its
// collateral clause elements (§3 "ROW", "STRUCT").
func evalCollateralDisplay(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	if n.Attribute == tree.AttrStructDisplay {
		out := value.Zero(n.Mode)
		out.Aggr = make(map[string]*value.Value, len(children))
		for i, c := range children {
			v, err := Evaluate(ctx, c)
			if err != nil {
				return nil, err
			}
			if i < len(n.Mode.Fields) {
				out.Aggr[n.Mode.Fields[i].Name] = v
			}
		}
		out.MarkInit()
		return out, nil
	}

	elemMode := n.Mode.Of
	elems := make([]*value.Value, 0, len(children))
	for _, c := range children {
		v, err := Evaluate(ctx, c)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return stow.MakeRow(ctx.Heap, elemMode, elems)
}
