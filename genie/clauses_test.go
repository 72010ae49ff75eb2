package genie

import (
	"math"
	"testing"

	"github.com/algol68/genie/prop"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

func TestEvalSerialThreadsUnitsInOrder(t *testing.T) {
	ctx := newTestContext()
	tag := &tree.Tag{Name: "i", Offset: 1}

	decl := tree.NewNode(tree.AttrIdentityDecl, "i", intMode)
	decl.Tag = tag
	decl.Append(denotation(3))

	clause := tree.NewNode(tree.AttrSerialClause, "", intMode)
	clause.Table = tree.NewTable(0)
	clause.Append(decl)
	clause.Append(denotation(9))

	v, err := EvalSerial(ctx, clause)
	if err != nil {
		t.Fatal(err)
	}
	if v.I != 9 {
		t.Errorf("a serial clause should yield its last unit's value, got %d", v.I)
	}
	if got := ctx.CurrentFrame().Get(tag.Offset); got == nil || got.I != 3 {
		t.Error("the identity declaration should still have run and bound its slot")
	}
}

func TestEvalSerialCatchesGotoToOwnLabel(t *testing.T) {
	ctx := newTestContext()
	labelTag := &tree.Tag{Name: "again", Kind: tree.TagLabel}
	target := denotation(4)
	labelTag.Body = target

	gotoNode := tree.NewNode(tree.AttrGoto, "again", intMode)
	gotoNode.Tag = labelTag

	clause := tree.NewNode(tree.AttrSerialClause, "", intMode)
	clause.Table = tree.NewTable(0)
	clause.Table.Declare(labelTag)
	clause.Append(gotoNode)
	clause.Append(target)

	v, err := EvalSerial(ctx, clause)
	if err != nil {
		t.Fatal(err)
	}
	if v.I != 4 {
		t.Errorf("expected the jump to resume at the label and yield 4, got %d", v.I)
	}
}

// TestEvalIntegerCaseSelectsBranch builds selector, two IN choices and
// an OUT branch (the last child is always the OUT slot) so that
// choosing the second IN choice is distinguishable from falling
// through to OUT.
func TestEvalIntegerCaseSelectsBranch(t *testing.T) {
	ctx := newTestContext()
	n := tree.NewNode(tree.AttrIntegerCase, "", intMode)
	n.Append(denotation(2))
	n.Append(denotation(10))
	n.Append(denotation(20))
	n.Append(denotation(99)) // OUT, should not be reached

	v, err := EvalIntegerCase(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	if v.I != 20 {
		t.Errorf("selector 2 should choose the second IN choice (20), got %d", v.I)
	}
}

func TestEvalIntegerCaseFallsThroughToOut(t *testing.T) {
	ctx := newTestContext()
	n := tree.NewNode(tree.AttrIntegerCase, "", intMode)
	n.Append(denotation(5))
	n.Append(denotation(10))
	n.Append(denotation(99)) // OUT, selector 5 matches no IN choice

	v, err := EvalIntegerCase(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	if v.I != 99 {
		t.Errorf("out-of-range selector should fall through to OUT, got %d", v.I)
	}
}

func TestEvalIntegerCaseTooFewChildrenErrors(t *testing.T) {
	ctx := newTestContext()
	n := tree.NewNode(tree.AttrIntegerCase, "", intMode)
	n.Append(denotation(5))

	if _, err := EvalIntegerCase(ctx, n); err == nil {
		t.Error("expected an error for a malformed case node with no choices")
	}
}

// constProp installs a PROP that always returns v, standing in for a
// denotation node whose on-the-wire encoding (e.g. a UNION literal) is
// out of this package's scope.
func constProp(v *value.Value) *prop.Prop {
	return &prop.Prop{Eval: func(ctx any, n *tree.Node) (any, error) { return v, nil }, Spec: "test-fixture"}
}

// TestEvalConformityCaseMatchesActiveMember builds a selector, a
// non-matching IN branch, a matching IN branch and a trailing OUT (the
// last child is always the OUT slot) so that matching via IN is
// distinguishable from falling through to OUT.
func TestEvalConformityCaseMatchesActiveMember(t *testing.T) {
	ctx := newTestContext()
	boolMode := &tree.Mode{Cat: tree.CatBool, ShortID: "bool", Name: "BOOL"}
	intMode := &tree.Mode{Cat: tree.CatInt, ShortID: "int", Name: "INT"}
	unionMode := &tree.Mode{Cat: tree.CatUnion, ShortID: "union"}

	union := value.Zero(unionMode)
	union.Aggr["$"] = &value.Value{Kind: value.KindBool, Mode: boolMode, B: true, Status: value.Init}
	union.MarkInit()

	selector := tree.NewNode(tree.AttrDenotation, "", unionMode)
	ctx.Cache.Install(selector, constProp(union))

	nonMatch := tree.NewNode(tree.AttrDenotation, "", intMode)
	nonMatch.Info.ConstBlob = encodeInt(9)

	match := tree.NewNode(tree.AttrDenotation, "", boolMode)
	match.Info.ConstBlob = []byte{1}

	out := tree.NewNode(tree.AttrDenotation, "", intMode)
	out.Info.ConstBlob = encodeInt(0)

	n := tree.NewNode(tree.AttrConformityCase, "", boolMode)
	n.Append(selector)
	n.Append(nonMatch)
	n.Append(match)
	n.Append(out)

	v, err := EvalConformityCase(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	if !v.B {
		t.Error("expected the matching IN branch to evaluate, not the non-matching one or OUT")
	}
}

// TestEvalLoopBareDoOdIsInfiniteUntilGoto exercises the spec's DO...OD
// form by threading a GOTO that jumps out of the loop through the
// enclosing serial clause, since a bare DO...OD never terminates on
// its own.
func TestEvalLoopBareDoOdIsInfiniteUntilGoto(t *testing.T) {
	ctx := newTestContext()
	labelTag := &tree.Tag{Name: "done", Kind: tree.TagLabel}
	after := denotation(42)
	labelTag.Body = after

	body := tree.NewNode(tree.AttrGoto, "done", intMode)
	body.Tag = labelTag

	loop := tree.NewNode(tree.AttrLoop, "", intMode)
	loop.Append(body)

	clause := tree.NewNode(tree.AttrSerialClause, "", intMode)
	clause.Table = tree.NewTable(0)
	clause.Table.Declare(labelTag)
	clause.Append(loop)
	clause.Append(after)

	v, err := EvalSerial(ctx, clause)
	if err != nil {
		t.Fatal(err)
	}
	if v.I != 42 {
		t.Errorf("expected the GOTO out of the bare DO...OD to resume at 42, got %d", v.I)
	}
}

// TestEvalLoopDescendingByVisitsEveryStep reproduces a DOWNTO-shaped
// loop (negative BY) and checks the tag lands on the final step, the
// by < 0 branch loopSpecOf used to make unreachable.
func TestEvalLoopDescendingByVisitsEveryStep(t *testing.T) {
	ctx := newTestContext()
	tag := &tree.Tag{Name: "i", Mode: intMode, Offset: 7}

	loop := tree.NewNode(tree.AttrLoop, "", intMode)
	loop.Tag = tag
	loop.Info.HasRange = true
	loop.Info.From = 5
	loop.Info.To = 1
	loop.Info.By = -2
	loop.Append(denotation(0))

	if _, err := EvalLoop(ctx, loop); err != nil {
		t.Fatal(err)
	}
	got := ctx.CurrentFrame().Get(tag.Offset)
	if got == nil || got.I != 1 {
		t.Errorf("expected the last DOWNTO step (5,3,1) to land on 1, got %v", got)
	}
}

// TestEvalLoopWhileStopsBeforeBody checks the WHILE test is consulted
// on every iteration and can end the loop before the body ever runs.
func TestEvalLoopWhileStopsBeforeBody(t *testing.T) {
	ctx := newTestContext()
	tag := &tree.Tag{Name: "i", Mode: intMode, Offset: 9}

	whileNode := tree.NewNode(tree.AttrDenotation, "", boolModeForTest)
	ctx.Cache.Install(whileNode, &prop.Prop{
		Eval: func(c any, n *tree.Node) (any, error) {
			return &value.Value{Kind: value.KindBool, Mode: boolModeForTest, B: false, Status: value.Init}, nil
		},
		Spec: "test-fixture",
	})

	loop := tree.NewNode(tree.AttrLoop, "", intMode)
	loop.Tag = tag
	loop.Info.HasRange = true
	loop.Info.From = 1
	loop.Info.To = 10
	loop.Info.By = 1
	loop.Info.While = whileNode
	loop.Append(tree.NewNode(tree.AttrGoto, "unreachable", intMode)) // body would error if reached

	if _, err := EvalLoop(ctx, loop); err != nil {
		t.Fatal(err)
	}
}

var boolModeForTest = &tree.Mode{Cat: tree.CatBool, ShortID: "bool", Name: "BOOL"}

// TestEvalLoopByZeroIsInfiniteUntilWhileStops covers §8's boundary
// case: BY 0 no longer gets coerced to 1, so a FROM a TO a BY 0 loop
// only terminates via its WHILE test.
func TestEvalLoopByZeroIsInfiniteUntilWhileStops(t *testing.T) {
	ctx := newTestContext()
	tag := &tree.Tag{Name: "i", Mode: intMode, Offset: 13}

	seen := 0
	whileNode := tree.NewNode(tree.AttrDenotation, "", boolModeForTest)
	ctx.Cache.Install(whileNode, &prop.Prop{
		Eval: func(c any, n *tree.Node) (any, error) {
			seen++
			return &value.Value{Kind: value.KindBool, Mode: boolModeForTest, B: seen < 3, Status: value.Init}, nil
		},
		Spec: "test-fixture",
	})

	loop := tree.NewNode(tree.AttrLoop, "", intMode)
	loop.Tag = tag
	loop.Info.HasRange = true
	loop.Info.From = 4
	loop.Info.To = 4
	loop.Info.By = 0
	loop.Info.While = whileNode
	loop.Append(denotation(0))

	if _, err := EvalLoop(ctx, loop); err != nil {
		t.Fatal(err)
	}
	if seen != 3 {
		t.Errorf("expected the WHILE test to run 3 times before stopping the BY-0 loop, got %d", seen)
	}
	got := ctx.CurrentFrame().Get(tag.Offset)
	if got == nil || got.I != 4 {
		t.Errorf("a BY-0 loop's tag should stay pinned at FROM (4), got %v", got)
	}
}

// TestEvalLoopIncrementOverflowErrors drives BY to the edge of int64
// so the first increment wraps past math.MaxInt64, and checks EvalLoop
// raises a diagnostic instead of silently wrapping the index.
func TestEvalLoopIncrementOverflowErrors(t *testing.T) {
	ctx := newTestContext()
	tag := &tree.Tag{Name: "i", Mode: intMode, Offset: 15}

	loop := tree.NewNode(tree.AttrLoop, "", intMode)
	loop.Tag = tag
	loop.Info.HasRange = true
	loop.Info.From = 1
	loop.Info.To = math.MaxInt64
	loop.Info.By = math.MaxInt64
	loop.Append(denotation(0))

	if _, err := EvalLoop(ctx, loop); err == nil {
		t.Error("expected an overflow diagnostic when the loop index wraps")
	}
}
