package monitor

import (
	"testing"

	"github.com/algol68/genie/tree"
)

func TestSetBreakAndClearBreak(t *testing.T) {
	s := NewSet()
	n := tree.NewNode(tree.AttrDenotation, "", nil)

	if s.ShouldBreak(n) {
		t.Fatal("a fresh node should not break")
	}
	s.SetBreak(n, tree.StatusBreakpoint)
	if !s.ShouldBreak(n) {
		t.Fatal("expected ShouldBreak after SetBreak")
	}
	if !s.Kinds(n.ID).Has(tree.StatusBreakpoint) {
		t.Error("Kinds should report the breakpoint kind just set")
	}

	s.ClearBreak(n, tree.StatusBreakpoint)
	if s.ShouldBreak(n) {
		t.Error("expected ShouldBreak to clear after ClearBreak")
	}
}

func TestSetBreakIsPerKind(t *testing.T) {
	s := NewSet()
	n := tree.NewNode(tree.AttrDenotation, "", nil)
	s.SetBreak(n, tree.StatusBreakpointWatch)
	s.ClearBreak(n, tree.StatusBreakpoint)
	if !s.ShouldBreak(n) {
		t.Error("clearing an unset kind should not disturb a different kind already set")
	}
}

func TestWatchChangedDetectsMutation(t *testing.T) {
	w := NewWatch(&tree.Tag{Name: "x"})
	if !w.Changed("1") {
		t.Error("the first observation should always report a change")
	}
	if w.Changed("1") {
		t.Error("an unchanged rendering should not report a change")
	}
	if !w.Changed("2") {
		t.Error("a new rendering should report a change")
	}
}
