package contin

import (
	"errors"
	"testing"

	"github.com/algol68/genie/tree"
)

func TestAsJumpRoundTrips(t *testing.T) {
	tag := &tree.Tag{Name: "loop"}
	var err error = &JumpRequest{Target: tag, Unwind: 3}

	j, ok := AsJump(err)
	if !ok {
		t.Fatal("expected AsJump to recognise a *JumpRequest")
	}
	if j.Target != tag || j.Unwind != 3 {
		t.Errorf("unexpected jump contents: %+v", j)
	}
}

func TestAsJumpRejectsOrdinaryError(t *testing.T) {
	if _, ok := AsJump(errors.New("boom")); ok {
		t.Error("AsJump should not match a plain error")
	}
}

func TestLabelsCatchesKnownTarget(t *testing.T) {
	label := tree.NewNode(tree.AttrLabel, "loop", nil)
	labels := NewLabels([]*tree.Node{label})

	target, ok := labels.Catches(&JumpRequest{Target: &tree.Tag{Name: "loop"}})
	if !ok || target != label {
		t.Fatalf("expected Catches to resolve the loop label, got %v/%v", target, ok)
	}

	if _, ok := labels.Catches(&JumpRequest{Target: &tree.Tag{Name: "elsewhere"}}); ok {
		t.Error("Catches should not match an undeclared label")
	}
}

func TestNilLabelsNeverCatch(t *testing.T) {
	var labels *Labels
	if _, ok := labels.Catches(&JumpRequest{Target: &tree.Tag{Name: "loop"}}); ok {
		t.Error("a nil Labels set must never catch a jump")
	}
}
