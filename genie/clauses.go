package genie

import (
	"github.com/algol68/genie/contin"
	"github.com/algol68/genie/diag"
	"github.com/algol68/genie/prop"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// jumpTo raises a contin.JumpRequest targeting tag, unwinding to
// whatever frame currently declares it (§4.8 "Jump/label model").
func jumpTo(ctx *Context, tag *tree.Tag) error {
	return &contin.JumpRequest{Target: tag, Unwind: ctx.CurrentFrame().Number}
}

// EvalSerial threads and evaluates a serial/closed clause's worklist
// (§4.4 "Sequence threading"): on the first visit ThreadSequence links
// consecutive unit/declaration nodes via Node.Seq; every visit then
// walks that chain, catching any JumpRequest whose target this
// clause's Table declares and resuming the worklist from there (§4.8).
func EvalSerial(ctx *Context, clause *tree.Node) (*value.Value, error) {
	head := prop.ThreadSequence(clause)

	labels := labelsOf(clause)

	var last *value.Value
	for n := head; n != nil; {
		v, err := Evaluate(ctx, n)
		if err != nil {
			if jr, ok := contin.AsJump(err); ok {
				if target, caught := labels.Catches(jr); caught {
					n = target
					last = nil
					continue
				}
			}
			return nil, err
		}
		last = v
		n = n.Seq
	}
	return last, nil
}

// labelsOf builds the contin.Labels set for a clause from its Table's
// TagLabel entries, used to decide whether a JumpRequest should be
// caught here or re-propagated.
func labelsOf(clause *tree.Node) *contin.Labels {
	if clause.Table == nil {
		return nil
	}
	var nodes []*tree.Node
	for _, tag := range clause.Table.Tags {
		if tag.Kind == tree.TagLabel && tag.Body != nil {
			nodes = append(nodes, tag.Body)
		}
	}
	if len(nodes) == 0 {
		return nil
	}
	return contin.NewLabels(nodes)
}

// EvalConditional implements IF/THEN/ELIF/ELSE (§4.5). A missing ELSE
// branch at runtime is a hard error (SPEC_FULL.md open-question
// decision 1: IF-without-ELSE raises a diagnostic rather than
// fabricating an "undefined" value, preserving invariant 1
// universally) rather than leaving the clause's result uninitialised.
func EvalConditional(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	if len(children) < 2 {
		return nil, raiseInternal("genie: conditional node %d malformed", n.ID)
	}
	cond, err := Evaluate(ctx, children[0])
	if err != nil {
		return nil, err
	}
	if cond.B {
		return Evaluate(ctx, children[1])
	}
	if len(children) >= 3 {
		return Evaluate(ctx, children[2])
	}
	return nil, diag.New(diag.SeverityRuntime, diag.CategoryFalseAssertion,
		"IF without ELSE evaluated its false branch")
}

// EvalIntegerCase implements the CASE/IN/OUT clause over an INT
// selector (§4.5).
func EvalIntegerCase(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	if len(children) < 2 {
		return nil, raiseInternal("genie: case node %d malformed", n.ID)
	}
	selector, err := Evaluate(ctx, children[0])
	if err != nil {
		return nil, err
	}
	choices := children[1 : len(children)-1]
	idx := int(selector.I)
	if idx >= 1 && idx <= len(choices) {
		return Evaluate(ctx, choices[idx-1])
	}
	out := children[len(children)-1]
	if out == nil {
		return nil, diag.New(diag.SeverityRuntime, diag.CategoryFalseAssertion,
			"CASE selector out of range with no OUT clause")
	}
	return Evaluate(ctx, out)
}

// EvalConformityCase implements the CASE/IN (mode) .../OUT clause over
// a UNION-moded selector (§4.5 "conformity-case"): the selector's
// active member mode is matched against each IN branch's declared
// mode, CategoryModeMismatch if none match and there is no OUT.
func EvalConformityCase(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	if len(children) < 2 {
		return nil, raiseInternal("genie: conformity-case node %d malformed", n.ID)
	}
	selector, err := Evaluate(ctx, children[0])
	if err != nil {
		return nil, err
	}
	if selector.Kind != value.KindUnion {
		return nil, raiseInternal("genie: conformity-case selector on node %d is not a UNION", n.ID)
	}
	active := selector.Aggr["$"]

	branches := children[1 : len(children)-1]
	for _, b := range branches {
		if b.Mode != nil && active.Mode != nil && b.Mode.ShortID == active.Mode.ShortID {
			return Evaluate(ctx, b)
		}
	}
	out := children[len(children)-1]
	if out == nil {
		return nil, diag.New(diag.SeverityRuntime, diag.CategoryModeMismatch,
			"conformity-case selector matched no IN branch")
	}
	return Evaluate(ctx, out)
}

// EvalLoop implements FOR/FROM/BY/TO/WHILE/DO...OD (§4.5 "loop
// clause"): any loop variable is re-bound each iteration in the loop's
// own frame slot, and the WHILE test (if present) is checked before
// every DO body evaluation.
func EvalLoop(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	if len(children) < 1 {
		return nil, raiseInternal("genie: loop node %d malformed", n.ID)
	}

	spec := loopSpecOf(n)
	body := children[len(children)-1]

	if spec == nil {
		// Bare DO...OD with no FOR/WHILE clause: an infinite loop broken
		// only by a GOTO out of the body.
		for {
			if _, err := Evaluate(ctx, body); err != nil {
				return nil, err
			}
		}
	}

	i, to, by := spec.From, spec.To, spec.By
	for {
		if spec.HasRange {
			if by > 0 && i > to {
				break
			}
			if by < 0 && i < to {
				break
			}
			// by == 0 falls through unconditionally: §8's boundary case
			// ("FROM a TO b BY 0 runs forever if a=b") has no terminating
			// test of its own, so the WHILE clause (if any) is the loop's
			// only way out.
		}
		if spec.Tag != nil {
			lv := value.Zero(spec.Tag.Mode)
			lv.Kind = value.KindInt
			lv.I = int64(i)
			lv.MarkInit()
			ctx.CurrentFrame().Set(spec.Tag.Offset, lv)
		}
		if spec.While != nil {
			cond, err := Evaluate(ctx, spec.While)
			if err != nil {
				return nil, err
			}
			if !cond.B {
				break
			}
		}
		if _, err := Evaluate(ctx, body); err != nil {
			return nil, err
		}
		if !spec.HasRange || by == 0 {
			continue
		}
		next := i + by
		if (by > 0 && next < i) || (by < 0 && next > i) {
			return nil, diag.New(diag.SeverityRuntime, diag.CategoryOverflow,
				"loop index overflowed incrementing by %d from %d", by, i)
		}
		i = next
	}
	return value.Zero(n.Mode), nil
}

// loopSpec carries a loop clause's resolved FOR/FROM/BY/TO/WHILE parts;
// genie's node shape stores these as GenieInfo fields populated by the
// (out-of-scope) tree-builder rather than as distinguishable children,
// since Algol 68's loop clause grammar is highly optional.
type loopSpec struct {
	Tag          *tree.Tag
	HasRange     bool
	From, To, By int
	While        *tree.Node
}

// loopSpecOf reads back the loop control fields a tree-builder encodes
// onto the loop node; returns nil for a bare DO...OD. A range with BY
// omitted is the tree-builder's responsibility to default to 1 before
// encoding, same as FROM defaults to 1; loopSpecOf only reads values
// back, it never supplies Algol 68's grammar defaults itself.
func loopSpecOf(n *tree.Node) *loopSpec {
	if n.Tag == nil && !n.Info.HasRange && n.Info.While == nil {
		return nil
	}
	return &loopSpec{
		Tag:      n.Tag,
		HasRange: n.Info.HasRange,
		From:     n.Info.From,
		To:       n.Info.To,
		By:       n.Info.By,
		While:    n.Info.While,
	}
}
