package genie

import (
	"testing"

	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

func TestGenerateLocOpensFrameSlot(t *testing.T) {
	ctx := newTestContext()
	n := tree.NewNode(tree.AttrGenerator, "LOC", tree.NewRef(intMode))
	n.Info.Offset = 5

	out, err := Generate(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != value.KindRef || out.Ref.Discriminant != value.DiscriminantFrame {
		t.Fatalf("LOC generator should yield a frame-discriminant REF, got %+v", out.Ref)
	}
	if got := ctx.CurrentFrame().Get(5); got == nil {
		t.Fatal("LOC generator did not carve its frame slot")
	}
}

func TestGenerateHeapOutlivesFrameScope(t *testing.T) {
	ctx := newTestContext()
	n := tree.NewNode(tree.AttrGenerator, "HEAP", tree.NewRef(intMode))

	out, err := Generate(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != value.KindRef || out.Ref.Discriminant != value.DiscriminantHeap {
		t.Fatalf("HEAP generator should yield a heap-discriminant REF, got %+v", out.Ref)
	}
	if out.Ref.Scope != 0 {
		t.Errorf("a HEAP name must carry the outermost scope so it can flow up through any assignment, got %d", out.Ref.Scope)
	}
}
