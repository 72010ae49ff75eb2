package codegen

import (
	"fmt"
	"strings"

	"github.com/algol68/genie/standenv"
	"github.com/algol68/genie/tree"
)

// Phase names the three emission passes §4.6 describes: a compiled
// unit first declares the Go locals it needs, then emits the
// executable statements, and finally yields its result expression to
// its caller's declare phase.
type Phase int

const (
	PhaseDeclare Phase = iota
	PhaseExecute
	PhaseYield
)

// cseKey is the common-subexpression cache key: phase plus the
// node's stable identity, exactly as §4.6 names it ("CSE by
// (action, phase, identifier)").
type cseKey struct {
	phase Phase
	id    int
}

// Emitter accumulates one compilation unit's generated Go source
// across all three phases, deduplicating repeated sub-expressions via
// the CSE table and handing out unique local names via the name
// table.
type Emitter struct {
	standenv *standenv.Table

	declares []string
	executes []string

	cse   map[cseKey]string
	names map[string]int
}

// NewEmitter builds an Emitter that resolves operator/procedure calls
// against env's emitted Go names (§4.6 "Call-in": compiled code calls
// the same Go functions the interpreter's standenv procs wrap).
func NewEmitter(env *standenv.Table) *Emitter {
	return &Emitter{
		standenv: env,
		cse:      make(map[cseKey]string),
		names:    make(map[string]int),
	}
}

// unique returns a fresh Go identifier derived from base, never
// reused even if base repeats (§4.6 "unique-name table").
func (e *Emitter) unique(base string) string {
	n := e.names[base]
	e.names[base]++
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, n)
}

// Emit walks n and returns the Go expression yielding its value,
// appending any declare/execute statements the expression depends on.
// Only called on nodes Eligible has already approved.
func (e *Emitter) Emit(n *tree.Node) (string, error) {
	key := cseKey{phase: PhaseYield, id: n.ID}
	if cached, ok := e.cse[key]; ok {
		return cached, nil
	}

	var expr string
	var err error
	switch n.Attribute {
	case tree.AttrDenotation:
		expr, err = e.emitDenotation(n)
	case tree.AttrIdentifier:
		expr, err = e.emitIdentifier(n)
	case tree.AttrFormula:
		expr, err = e.emitFormula(n)
	case tree.AttrCast:
		expr, err = e.Emit(n.Sub)
	default:
		return "", fmt.Errorf("codegen: node %d (attribute %d) is not eligible for emission", n.ID, n.Attribute)
	}
	if err != nil {
		return "", err
	}

	e.cse[key] = expr
	return expr, nil
}

func (e *Emitter) emitDenotation(n *tree.Node) (string, error) {
	switch {
	case n.Mode.Name == "INT":
		var x int64
		for i, b := range n.Info.ConstBlob {
			if i >= 8 {
				break
			}
			x |= int64(b) << (8 * i)
		}
		return fmt.Sprintf("int64(%d)", x), nil
	case n.Mode.Name == "BOOL":
		v := len(n.Info.ConstBlob) > 0 && n.Info.ConstBlob[0] != 0
		return fmt.Sprintf("%v", v), nil
	default:
		return "", fmt.Errorf("codegen: unsupported denotation mode %s on node %d", n.Mode, n.ID)
	}
}

func (e *Emitter) emitIdentifier(n *tree.Node) (string, error) {
	local := e.unique("v_" + n.Symbol)
	decl := fmt.Sprintf("%s := frame.Get(%d)", local, n.Tag.Offset)
	e.declares = append(e.declares, decl)
	return local, nil
}

func (e *Emitter) emitFormula(n *tree.Node) (string, error) {
	if n.Tag == nil {
		return "", fmt.Errorf("codegen: formula node %d has no operator tag", n.ID)
	}
	entry, ok := e.standenv.Lookup(n.Tag.Name + ":" + n.Tag.Mode.ShortID)
	if !ok {
		return "", fmt.Errorf("codegen: operator %s has no standenv emit binding", n.Tag.Name)
	}
	args := make([]string, 0, 2)
	for _, c := range n.Children() {
		a, err := e.Emit(c)
		if err != nil {
			return "", err
		}
		args = append(args, a)
	}
	return fmt.Sprintf("%s(%s)", entry.EmitName, strings.Join(args, ", ")), nil
}

// Source renders the accumulated declare/execute/yield phases as one
// Go function body, ready for link.go to wrap in a package and hand
// to the plugin toolchain.
func (e *Emitter) Source(funcName, yieldExpr string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "func %s(frame genieFrame) (int64, error) {\n", funcName)
	for _, d := range e.declares {
		fmt.Fprintf(&b, "\t%s\n", d)
	}
	for _, s := range e.executes {
		fmt.Fprintf(&b, "\t%s\n", s)
	}
	fmt.Fprintf(&b, "\treturn %s, nil\n}\n", yieldExpr)
	return b.String()
}
