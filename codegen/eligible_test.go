package codegen

import (
	"testing"

	"github.com/algol68/genie/tree"
)

var codegenIntMode = &tree.Mode{Cat: tree.CatInt, Size: 8, ShortID: "int", Name: "INT"}

func intDenotation(x int64) *tree.Node {
	n := tree.NewNode(tree.AttrDenotation, "", codegenIntMode)
	n.Info.ConstBlob = []byte{byte(x)}
	n.Status = n.Status.Set(tree.StatusConstant)
	return n
}

func TestEligibleDenotationAtEveryLevel(t *testing.T) {
	n := intDenotation(1)
	for _, lvl := range []Level{Level1, Level2, Level3} {
		if !Eligible(n, lvl) {
			t.Errorf("a flat INT denotation should be eligible at level %d", lvl)
		}
	}
}

func TestEligibleIdentifierRequiresLevel2(t *testing.T) {
	n := tree.NewNode(tree.AttrIdentifier, "x", codegenIntMode)
	if Eligible(n, Level1) {
		t.Error("an identifier should not be eligible at level 1")
	}
	if !Eligible(n, Level2) {
		t.Error("an identifier should be eligible at level 2")
	}
}

func TestEligibleFormulaRecursesIntoChildren(t *testing.T) {
	formula := tree.NewNode(tree.AttrFormula, "+", codegenIntMode)
	formula.Append(intDenotation(1))
	ident := tree.NewNode(tree.AttrIdentifier, "x", codegenIntMode)
	formula.Append(ident)

	if Eligible(formula, Level1) {
		t.Error("a formula with a level-2-only child should not be eligible at level 1")
	}
	if !Eligible(formula, Level2) {
		t.Error("the same formula should be eligible once its identifier child qualifies at level 2")
	}
}

func TestEligibleConditionalRequiresLevel3(t *testing.T) {
	cond := tree.NewNode(tree.AttrConditional, "", codegenIntMode)
	cond.Append(intDenotation(1))
	cond.Append(intDenotation(2))

	if Eligible(cond, Level2) {
		t.Error("a conditional should not be eligible below level 3")
	}
	if !Eligible(cond, Level3) {
		t.Error("a conditional with eligible branches should be eligible at level 3")
	}
}

func TestEligibleRejectsNonPrimitiveMode(t *testing.T) {
	rowMode := &tree.Mode{Cat: tree.CatRow, Of: codegenIntMode, Dims: 1, ShortID: "row-int"}
	n := tree.NewNode(tree.AttrDenotation, "", rowMode)
	if Eligible(n, Level3) {
		t.Error("a ROW-moded node is stowed, never eligible for native compilation")
	}
}

func TestConstantUnitRequiresBothBits(t *testing.T) {
	withBlob := intDenotation(5)
	if !ConstantUnit(withBlob) {
		t.Error("a StatusConstant node with a non-empty blob should fold")
	}

	noBlob := tree.NewNode(tree.AttrDenotation, "", codegenIntMode)
	noBlob.Status = noBlob.Status.Set(tree.StatusConstant)
	if ConstantUnit(noBlob) {
		t.Error("a node with no cached constant blob should not be considered foldable")
	}
}
