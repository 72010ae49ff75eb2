package memory

import (
	"testing"

	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

func TestPushPopExprRoundTrips(t *testing.T) {
	ctx := NewContext(1 << 16)
	m := &tree.Mode{Cat: tree.CatInt}
	v := &value.Value{Kind: value.KindInt, I: 3, Status: value.Init}

	if err := ctx.PushExpr(v, m); err != nil {
		t.Fatal(err)
	}
	if ctx.ExprDepth() != 1 {
		t.Fatalf("ExprDepth() = %d, want 1", ctx.ExprDepth())
	}
	got, gotMode, ok := ctx.PopExpr()
	if !ok || got != v || gotMode != m {
		t.Errorf("PopExpr() = %v, %v, %v", got, gotMode, ok)
	}
	if ctx.ExprDepth() != 0 {
		t.Error("expression stack should be empty after the pop")
	}
}

func TestPopExprOnEmptyStack(t *testing.T) {
	ctx := NewContext(1 << 16)
	if _, _, ok := ctx.PopExpr(); ok {
		t.Error("PopExpr on an empty stack should report not ok")
	}
}

func TestCheckOverflowHardLimit(t *testing.T) {
	ctx := NewContext(100)
	if err := ctx.CheckOverflow(200); err != ErrStackOverflow {
		t.Errorf("got %v, want ErrStackOverflow", err)
	}
}

func TestCheckOverflowSoftMargin(t *testing.T) {
	ctx := NewContext(Overhead + 10)
	if err := ctx.CheckOverflow(Overhead + 5); err != ErrSoftOverflow {
		t.Errorf("got %v, want ErrSoftOverflow", err)
	}
}

func TestCheckOverflowWithinBudget(t *testing.T) {
	ctx := NewContext(1 << 20)
	if err := ctx.CheckOverflow(8); err != nil {
		t.Errorf("small growth within budget should not error, got %v", err)
	}
}
