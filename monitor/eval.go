package monitor

import (
	"fmt"

	"github.com/algol68/genie/genie"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// Hook returns a genie.BreakHook bound to m: installed on a
// genie.Context, it re-enters m.Enter whenever Evaluate visits a node
// carrying one of §4.7's six breakpoint bits (§4.7 "with --debug the
// monitor is re-entered at the failing node"). This is the monitor's
// only point of re-entrancy into genie, mirroring how yaegi's REPL
// calls back into its own EvalWithContext for each typed line.
func (m *Monitor) Hook() genie.BreakHook {
	return func(ctx *genie.Context, n *tree.Node) error {
		m.Ctx = ctx
		return m.Enter(n, ctx.CurrentFrame())
	}
}

// EvalExpr re-enters genie.Evaluate against the monitor's live frame
// to evaluate a watch/print expression typed at the monitor prompt
// (§4.7 "expression evaluator re-entering genie"). The out-of-scope
// parser is responsible for turning raw text into a *tree.Node; the
// monitor only drives evaluation of an already-parsed expression node.
func EvalExpr(ctx *genie.Context, expr *tree.Node) (string, error) {
	v, err := genie.Evaluate(ctx, expr)
	if err != nil {
		return "", err
	}
	return renderValue(v), nil
}

// renderValue renders a value.Value the way the monitor's `print`/
// watchpoint-change display needs, one line per scalar/aggregate kind.
func renderValue(v *value.Value) string {
	if v == nil {
		return "<void>"
	}
	switch v.Kind {
	case value.KindInt:
		return fmt.Sprintf("%d", v.I)
	case value.KindReal:
		return fmt.Sprintf("%g", v.R)
	case value.KindBool:
		return fmt.Sprintf("%v", v.B)
	case value.KindChar:
		return fmt.Sprintf("%q", v.C)
	case value.KindRef:
		if v.Ref.Nil {
			return "NIL"
		}
		return fmt.Sprintf("REF(scope=%d)", v.Ref.Scope)
	default:
		return fmt.Sprintf("<%v>", v.Kind)
	}
}
