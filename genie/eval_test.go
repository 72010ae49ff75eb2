package genie

import (
	"testing"

	"github.com/algol68/genie/memory"
	"github.com/algol68/genie/standenv"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

var intMode = &tree.Mode{Cat: tree.CatInt, Size: 8, ShortID: "int", Name: "INT"}

func encodeInt(x int64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(x >> (8 * i))
	}
	return b
}

func denotation(x int64) *tree.Node {
	n := tree.NewNode(tree.AttrDenotation, "", intMode)
	n.Info.ConstBlob = encodeInt(x)
	return n
}

func newTestContext() *Context {
	ctx := NewContext(1 << 16)
	env := standenv.New()
	ctx.Standenv = env.Bindings()
	root := tree.NewNode(tree.AttrSerialClause, "", intMode)
	root.Table = tree.NewTable(0)
	ctx.Frames = memory.NewFrame(nil, nil, root, 4)
	return ctx
}

func TestEvaluateDenotation(t *testing.T) {
	ctx := newTestContext()
	n := denotation(42)
	v, err := Evaluate(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	if v.I != 42 {
		t.Errorf("got %d, want 42", v.I)
	}
	if !v.IsInit() {
		t.Error("denotation result should be initialised")
	}
}

func TestEvaluateFormulaCachesProp(t *testing.T) {
	ctx := newTestContext()
	plus := tree.NewNode(tree.AttrFormula, "+", intMode)
	plus.Tag = &tree.Tag{Name: "+", Kind: tree.TagOperator, Mode: intMode}
	plus.Append(denotation(40))
	plus.Append(denotation(2))

	v, err := Evaluate(ctx, plus)
	if err != nil {
		t.Fatal(err)
	}
	if v.I != 42 {
		t.Errorf("got %d, want 42", v.I)
	}
	if _, ok := ctx.Cache.Get(plus); !ok {
		t.Error("expected a PROP to be cached after the first evaluation")
	}

	// A cached PROP must be semantically equivalent to generic
	// evaluation of the same node (invariant 6).
	v2, err := Evaluate(ctx, plus)
	if err != nil {
		t.Fatal(err)
	}
	if v2.I != v.I {
		t.Errorf("second evaluation via cached PROP diverged: got %d, want %d", v2.I, v.I)
	}
}

func TestEvaluateIdentifierUninitialised(t *testing.T) {
	ctx := newTestContext()
	tag := &tree.Tag{Name: "x", Kind: tree.TagIdentifier, Mode: intMode, Level: 0, Offset: 0}
	ctx.CurrentFrame().Set(0, value.Zero(intMode))

	ident := tree.NewNode(tree.AttrIdentifier, "x", intMode)
	ident.Tag = tag

	if _, err := Evaluate(ctx, ident); err == nil {
		t.Error("expected an error reading an uninitialised identifier")
	}
}

func TestConditionalWithoutElseIsRuntimeError(t *testing.T) {
	ctx := newTestContext()
	boolMode := &tree.Mode{Cat: tree.CatBool, Size: 1, ShortID: "bool", Name: "BOOL"}
	cond := tree.NewNode(tree.AttrDenotation, "", boolMode)
	cond.Info.ConstBlob = []byte{0} // FALSE

	conditional := tree.NewNode(tree.AttrConditional, "", intMode)
	conditional.Append(cond)
	conditional.Append(denotation(1))

	if _, err := Evaluate(ctx, conditional); err == nil {
		t.Error("expected a runtime error for IF without ELSE taking the false branch")
	}
}

func TestLoopBareDoOdPropagatesBodyError(t *testing.T) {
	// A bare DO...OD with no FOR/WHILE control is an infinite loop
	// broken only by a jump; here the body itself errors, so EvalLoop
	// must propagate that error rather than looping forever.
	ctx := newTestContext()
	boolMode := &tree.Mode{Cat: tree.CatBool, Size: 1, ShortID: "bool", Name: "BOOL"}
	badCond := tree.NewNode(tree.AttrDenotation, "", boolMode)
	// Deliberately leave ConstBlob empty so the body's evaluation
	// fails immediately instead of looping forever in this test.
	loop := tree.NewNode(tree.AttrLoop, "", intMode)
	loop.Append(badCond)

	if _, err := Evaluate(ctx, loop); err == nil {
		t.Error("expected an error from the malformed loop body")
	}
}
