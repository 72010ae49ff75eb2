package prop

import (
	"testing"

	"github.com/algol68/genie/tree"
)

func TestInstallAndGet(t *testing.T) {
	c := NewCache()
	n := tree.NewNode(tree.AttrDenotation, "", nil)
	p := &Prop{Spec: "denotation:int"}

	if _, ok := c.Get(n); ok {
		t.Fatal("a fresh cache should have no entry for n")
	}
	c.Install(n, p)
	got, ok := c.Get(n)
	if !ok || got != p {
		t.Fatalf("Get(n) = %v, %v, want %v, true", got, ok, p)
	}
}

func TestInstallIsKeyedByNodeID(t *testing.T) {
	c := NewCache()
	a := tree.NewNode(tree.AttrDenotation, "a", nil)
	b := tree.NewNode(tree.AttrDenotation, "b", nil)
	c.Install(a, &Prop{Spec: "a"})
	c.Install(b, &Prop{Spec: "b"})

	gotA, _ := c.Get(a)
	gotB, _ := c.Get(b)
	if gotA.Spec != "a" || gotB.Spec != "b" {
		t.Errorf("cache entries crossed: a=%q b=%q", gotA.Spec, gotB.Spec)
	}
}

func TestPromoteOverwritesExistingEntry(t *testing.T) {
	c := NewCache()
	n := tree.NewNode(tree.AttrFormula, "", nil)
	c.Install(n, &Prop{Spec: "generic"})
	c.Promote(n, &Prop{Spec: "native"})

	got, ok := c.Get(n)
	if !ok || got.Spec != "native" {
		t.Errorf("Promote did not overwrite, got %+v, %v", got, ok)
	}
}

func TestLenCountsDistinctNodes(t *testing.T) {
	c := NewCache()
	if c.Len() != 0 {
		t.Fatalf("fresh cache Len() = %d, want 0", c.Len())
	}
	c.Install(tree.NewNode(tree.AttrDenotation, "", nil), &Prop{})
	c.Install(tree.NewNode(tree.AttrDenotation, "", nil), &Prop{})
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}
