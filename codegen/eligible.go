// Package codegen implements C6, the optimising code generator: an
// eligibility predicate that decides which nodes are worth compiling,
// a constant folder, and a plugin-based call-in backend that promotes
// an eligible node's PROP to native dispatch (§4.6).
package codegen

import "github.com/algol68/genie/tree"

// Level is the three-tier eligibility ladder of §4.6. Every eligible
// node has a primitive mode. Level 1 permits denotations and formulas
// whose operands are eligible (the operator itself is not checked);
// level 2 adds identifiers, casts and closed/serial clauses whose
// entire body is itself eligible; level 3 adds conditionals and loops
// with eligible bodies.
// -O1/-O2/-O3 select the matching level; -O0 disables codegen
// entirely (handled by cmd/genie never calling this package).
type Level int

const (
	Level1 Level = iota + 1
	Level2
	Level3
)

// Eligible reports whether n qualifies for native compilation at the
// given optimisation level (§4.6 "basic-unit predicate").
func Eligible(n *tree.Node, level Level) bool {
	if n == nil {
		return false
	}
	if !n.Mode.IsPrimitive() {
		return false
	}
	switch n.Attribute {
	case tree.AttrDenotation:
		return true
	case tree.AttrIdentifier:
		return level >= Level2
	case tree.AttrFormula:
		return eligibleFormula(n, level)
	case tree.AttrCast:
		return level >= Level2 && eligibleChildren(n, level)
	case tree.AttrClosedClause, tree.AttrSerialClause:
		return level >= Level2 && eligibleChildren(n, level)
	case tree.AttrConditional:
		return level >= Level3 && eligibleChildren(n, level)
	case tree.AttrLoop:
		return level >= Level3 && eligibleChildren(n, level)
	default:
		return false
	}
}

func eligibleFormula(n *tree.Node, level Level) bool {
	return eligibleChildren(n, level)
}

func eligibleChildren(n *tree.Node, level Level) bool {
	for _, c := range n.Children() {
		if !Eligible(c, level) {
			return false
		}
	}
	return true
}

// ConstantUnit reports whether n can be folded at compile time:
// invariant 7 requires StatusConstant nodes to be free of side effects
// and frame-independent, which the mode checker has already verified
// by the time codegen sees the node — codegen only needs to trust the
// bit (§4.6 "constant_unit folder").
func ConstantUnit(n *tree.Node) bool {
	return n.Status.Has(tree.StatusConstant) && len(n.Info.ConstBlob) > 0
}
