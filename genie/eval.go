package genie

import (
	"fmt"
	"math"

	"github.com/algol68/genie/diag"
	"github.com/algol68/genie/prop"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// Evaluate dispatches node n: a breakpoint check, then a cached-PROP
// lookup, then (on cache miss, when optimising) a native-PROP attempt
// through TryNative, then coercion-first generic dispatch, whose
// generic PROP is cached for the next visit. Grounded on the teacher's
// interp.Interpreter.run/interp.node.Walk shape (interp/interp.go),
// generalised from a single Go-reflection call to the mode-driven
// switch below.
func Evaluate(ctx *Context, n *tree.Node) (*value.Value, error) {
	if n == nil {
		return nil, raiseInternal("genie: nil node reached Evaluate")
	}

	if n.Status.Any(tree.BreakpointMask) && ctx.Break != nil {
		if err := ctx.Break(ctx, n); err != nil {
			return nil, err
		}
	}

	if p, ok := ctx.Cache.Get(n); ok {
		return evalViaProp(ctx, n, p)
	}

	if ctx.Optimise && ctx.TryNative != nil {
		if p, ok := ctx.TryNative(ctx, n); ok {
			ctx.Cache.Install(n, p)
			return evalViaProp(ctx, n, p)
		}
	}

	v, err := dispatch(ctx, n)
	if err != nil {
		return nil, err
	}
	ctx.Cache.Install(n, &prop.Prop{Eval: genericEval, Source: n, Spec: "generic"})
	return v, nil
}

// genericEval is the EvalFunc installed for every node dispatched
// generically; invariant 6 requires it to behave exactly like dispatch
// itself (a cached generic PROP is not an optimisation, only a
// avoided-recheck).
func genericEval(ctx any, n *tree.Node) (any, error) {
	c := ctx.(*Context)
	return dispatch(c, n)
}

func evalViaProp(ctx *Context, n *tree.Node, p *prop.Prop) (*value.Value, error) {
	out, err := p.Eval(ctx, n)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	v, ok := out.(*value.Value)
	if !ok {
		return nil, raiseInternal("genie: PROP for node %d returned non-Value %T", n.ID, out)
	}
	return v, nil
}

// dispatch is the generic, uncached evaluator: coercion pipeline
// first (§4.5 "Node dispatch"), then the attribute switch.
func dispatch(ctx *Context, n *tree.Node) (*value.Value, error) {
	if n.IsCoercion() {
		return Coerce(ctx, n)
	}

	switch n.Attribute {
	case tree.AttrDenotation:
		return evalDenotation(ctx, n)
	case tree.AttrIdentifier:
		return evalIdentifier(ctx, n)
	case tree.AttrFormula:
		return evalFormula(ctx, n)
	case tree.AttrCall:
		return Call(ctx, n)
	case tree.AttrSlice:
		return evalSlice(ctx, n)
	case tree.AttrSelection:
		return evalSelection(ctx, n)
	case tree.AttrCast:
		return evalCast(ctx, n)
	case tree.AttrAssignation:
		return Assign(ctx, n)
	case tree.AttrIdentity:
		return evalIdentity(ctx, n)
	case tree.AttrAndF:
		return evalAndF(ctx, n)
	case tree.AttrOrF:
		return evalOrF(ctx, n)
	case tree.AttrClosedClause, tree.AttrSerialClause:
		return EvalSerial(ctx, n)
	case tree.AttrParallelClause:
		return EvalParallel(ctx, n)
	case tree.AttrConditional:
		return EvalConditional(ctx, n)
	case tree.AttrIntegerCase:
		return EvalIntegerCase(ctx, n)
	case tree.AttrConformityCase:
		return EvalConformityCase(ctx, n)
	case tree.AttrLoop:
		return EvalLoop(ctx, n)
	case tree.AttrIdentityDecl, tree.AttrVariableDecl, tree.AttrProcedureDecl,
		tree.AttrOperatorDecl, tree.AttrModeDecl, tree.AttrPriorityDecl:
		return Declare(ctx, n)
	case tree.AttrGoto:
		return evalGoto(ctx, n)
	case tree.AttrLabel:
		return evalLabel(ctx, n)
	case tree.AttrGenerator:
		return Generate(ctx, n)
	case tree.AttrRowDisplay, tree.AttrStructDisplay:
		return evalDisplay(ctx, n)
	case tree.AttrSkip:
		return value.Zero(n.Mode), nil
	case tree.AttrNihil:
		v := value.Zero(n.Mode)
		v.Ref = value.NewNilRef(ctx.CurrentFrame().Level())
		v.Kind = value.KindRef
		v.MarkInit()
		return v, nil
	case tree.AttrCode:
		return nil, diag.New(diag.SeverityRuntime, diag.CategoryCodeReached,
			"CODE clause reached at runtime")
	default:
		return nil, raiseInternal("genie: unhandled attribute %d on node %d", n.Attribute, n.ID)
	}
}

func evalDenotation(ctx *Context, n *tree.Node) (*value.Value, error) {
	v := value.Zero(n.Mode)
	if len(n.Info.ConstBlob) == 0 {
		return nil, raiseInternal("genie: denotation node %d has no constant blob", n.ID)
	}
	if err := decodeConstant(v, n.Info.ConstBlob); err != nil {
		return nil, err
	}
	v.MarkInit()
	v.Status |= value.Constant
	return v, nil
}

func evalIdentifier(ctx *Context, n *tree.Node) (*value.Value, error) {
	if n.Tag == nil {
		return nil, raiseInternal("genie: identifier node %d has no tag", n.ID)
	}
	frame := ctx.CurrentFrame().At(ctx.CurrentFrame().LexLevel - n.Tag.Level)
	if frame == nil {
		return nil, raiseInternal("genie: identifier %s resolves to a frame above the current chain", n.Symbol)
	}
	v := frame.Get(n.Tag.Offset)
	if v == nil || !v.IsInit() {
		return nil, diag.New(diag.SeverityRuntime, diag.CategoryUninitialisedRead,
			"%s read before initialisation", n.Symbol)
	}
	return v, nil
}

func evalAndF(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	lhs, err := Evaluate(ctx, children[0])
	if err != nil {
		return nil, err
	}
	if !lhs.B {
		return lhs, nil
	}
	return Evaluate(ctx, children[1])
}

func evalOrF(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	lhs, err := Evaluate(ctx, children[0])
	if err != nil {
		return nil, err
	}
	if lhs.B {
		return lhs, nil
	}
	return Evaluate(ctx, children[1])
}

func evalIdentity(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	lhs, err := Evaluate(ctx, children[0])
	if err != nil {
		return nil, err
	}
	rhs, err := Evaluate(ctx, children[1])
	if err != nil {
		return nil, err
	}
	if lhs.Kind != value.KindRef || rhs.Kind != value.KindRef {
		return nil, raiseInternal("genie: IS/ISNT applied to non-REF operands on node %d", n.ID)
	}
	same := lhs.Ref.SameAddress(rhs.Ref)
	out := value.Zero(n.Mode)
	out.B = same
	if n.Symbol == "ISNT" {
		out.B = !same
	}
	out.MarkInit()
	return out, nil
}

func evalGoto(ctx *Context, n *tree.Node) (*value.Value, error) {
	if n.Tag == nil {
		return nil, raiseInternal("genie: GOTO node %d has no label tag", n.ID)
	}
	return nil, jumpTo(ctx, n.Tag)
}

func evalLabel(ctx *Context, n *tree.Node) (*value.Value, error) {
	return value.Zero(n.Mode), nil
}

func evalCast(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	return Evaluate(ctx, children[len(children)-1])
}

func evalDisplay(ctx *Context, n *tree.Node) (*value.Value, error) {
	return evalCollateralDisplay(ctx, n)
}

// decodeConstant is a placeholder hook for the (out-of-scope) parser's
// denotation encoding; genie only needs to know it exists and is
// mode-tagged, not how the scanner produced it.
func decodeConstant(v *value.Value, blob []byte) error {
	switch v.Kind {
	case value.KindInt:
		if len(blob) < 8 {
			return fmt.Errorf("genie: short INT constant blob")
		}
		var x int64
		for i := 0; i < 8; i++ {
			x |= int64(blob[i]) << (8 * i)
		}
		v.I = x
	case value.KindBool:
		v.B = len(blob) > 0 && blob[0] != 0
	case value.KindChar:
		if len(blob) > 0 {
			v.C = blob[0]
		}
	case value.KindReal:
		if len(blob) < 8 {
			return fmt.Errorf("genie: short REAL constant blob")
		}
		var bits uint64
		for i := 0; i < 8; i++ {
			bits |= uint64(blob[i]) << (8 * i)
		}
		v.R = math.Float64frombits(bits)
	default:
		v.By = blob
	}
	return nil
}
