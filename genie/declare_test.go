package genie

import (
	"testing"

	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

func TestDeclareIdentityBindsFrameSlot(t *testing.T) {
	ctx := newTestContext()
	tag := &tree.Tag{Name: "i", Kind: tree.TagIdentifier, Mode: intMode, Offset: 1}

	n := tree.NewNode(tree.AttrIdentityDecl, "i", intMode)
	n.Tag = tag
	n.Append(denotation(42))

	v, err := Declare(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	if v.I != 42 || !v.IsInit() {
		t.Fatalf("unexpected declared value %+v", v)
	}
	if got := ctx.CurrentFrame().Get(tag.Offset); got == nil || got.I != 42 {
		t.Fatalf("identity was not bound into frame slot %d", tag.Offset)
	}
}

func TestDeclareVariableWithoutInitialiserStaysUninitialised(t *testing.T) {
	ctx := newTestContext()
	tag := &tree.Tag{Name: "x", Kind: tree.TagIdentifier, Mode: intMode, Offset: 2}

	n := tree.NewNode(tree.AttrVariableDecl, "x", tree.NewRef(intMode))
	n.Tag = tag

	out, err := Declare(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != value.KindRef || !out.IsInit() {
		t.Fatalf("a freshly declared variable's name should itself be an initialised REF, got %+v", out)
	}
	if got := ctx.CurrentFrame().Get(tag.Offset); got == nil || got.IsInit() {
		t.Error("a variable declared without an initialiser should read as uninitialised (invariant 1 deferred to first deref)")
	}
}

func TestDeclareVariableWithInitialiser(t *testing.T) {
	ctx := newTestContext()
	tag := &tree.Tag{Name: "x", Kind: tree.TagIdentifier, Mode: intMode, Offset: 3}

	n := tree.NewNode(tree.AttrVariableDecl, "x", tree.NewRef(intMode))
	n.Tag = tag
	n.Append(denotation(9))

	out, err := Declare(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	stored, err := ReadRef(ctx, out.Ref)
	if err != nil {
		t.Fatal(err)
	}
	if stored.I != 9 || !stored.IsInit() {
		t.Fatalf("expected the variable's slot to hold 9, got %+v", stored)
	}
}

func TestDeclareProcedureWithParamsIsPartial(t *testing.T) {
	ctx := newTestContext()
	body := tree.NewNode(tree.AttrDenotation, "", intMode)
	body.Info.ConstBlob = encodeInt(1)

	procMode := &tree.Mode{Cat: tree.CatProc, ShortID: "proc(int)int", Params: []*tree.Mode{intMode}}
	tag := &tree.Tag{Name: "f", Kind: tree.TagOperator, Mode: procMode, Offset: 4, Body: body}

	n := tree.NewNode(tree.AttrProcedureDecl, "f", procMode)
	n.Tag = tag

	out, err := Declare(ctx, n)
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != value.KindProc || !out.Proc.IsPartial() {
		t.Fatalf("a procedure with one declared parameter should be Partial, got %+v", out.Proc)
	}
}
