package genie

import (
	"context"

	"github.com/algol68/genie/par"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// EvalParallel implements the PAR clause (§5): each collateral unit
// runs on its own worker goroutine through package par, serialised
// against a size-1 unit-sema so only one worker at a time mutates the
// shared frame/expression stack. The clause's own result is VOID,
// matching §5's "a PAR clause yields no value of its own".
func EvalParallel(ctx *Context, n *tree.Node) (*value.Value, error) {
	units := n.Children()
	sema := par.NewUnitSema()

	eval := func(u *tree.Node) (*value.Value, error) {
		return Evaluate(ctx, u)
	}

	if _, err := par.Run(context.Background(), eval, sema, units); err != nil {
		return nil, err
	}
	return value.Zero(n.Mode), nil
}
