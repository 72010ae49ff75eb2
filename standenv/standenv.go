// Package standenv builds the standard-environment table: every
// arithmetic, relational and RNG operator and procedure the
// interpreter's identifier/operator namespace is seeded with before a
// program's own declarations run (§4.4's dispatch-cache table calls
// this the "standenv" source of PROP entries; §6 names it directly as
// the home of the persistent RNG state and transput procs).
//
// Grounded on the teacher's `initUniverse` builtin table
// (`interp/interp.go`, `bltnSym` entries like `bltnAppend`/`bltnLen`
// mapping names to Go functions): standenv.Table plays the same role,
// generalised from a map of Go closures wrapping `reflect.Value`
// arguments to a map of value.Proc wrapping *value.Value arguments.
package standenv

import (
	"math"

	"github.com/algol68/genie/diag"
	"github.com/algol68/genie/rng"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// Entry is one standenv binding: its dispatch key (operator/procedure
// name, optionally qualified by an operand mode's ShortID for
// overload resolution), the emitted Go source name codegen's plugins
// call directly (§4.6 "Call-in"), and the native implementation.
type Entry struct {
	Key         string
	EmitName    string
	Proc        *value.Proc
}

// Table maps each dispatch key to one Entry holding the native proc
// and its generated-code name.
type Table struct {
	entries map[string]Entry
}

// New builds the standard environment: int/real arithmetic operators,
// int comparison operators, and the NEXT RANDOM proc. No boolean
// connectives or transput procs are installed.
func New() *Table {
	t := &Table{entries: make(map[string]Entry)}
	t.installArithmetic()
	t.installRelational()
	t.installRNG()
	return t
}

func (t *Table) install(key, emit string, fn func(args []*value.Value) (*value.Value, error)) {
	t.entries[key] = Entry{
		Key:      key,
		EmitName: emit,
		Proc: &value.Proc{
			Status:   value.ProcStandenv,
			Standenv: fn,
		},
	}
}

// Bindings returns the name -> *value.Proc map genie.Context.Standenv
// consumes directly.
func (t *Table) Bindings() map[string]*value.Proc {
	out := make(map[string]*value.Proc, len(t.entries))
	for k, e := range t.entries {
		out[k] = e.Proc
	}
	return out
}

// Lookup returns the full Entry (including its emitted name), used by
// codegen when a call site resolves to a standenv proc it can link
// against directly instead of interpreting (§4.6).
func (t *Table) Lookup(key string) (Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

func mustInt(v *value.Value) int64 { return v.I }
func mustReal(v *value.Value) float64 {
	if v.Kind == value.KindInt {
		return float64(v.I)
	}
	return v.R
}

func (t *Table) installArithmetic() {
	intBinop := func(key, emit string, fn func(a, b int64) (int64, error)) {
		t.install(key, emit, func(args []*value.Value) (*value.Value, error) {
			r, err := fn(mustInt(args[0]), mustInt(args[1]))
			if err != nil {
				return nil, err
			}
			out := &value.Value{Kind: value.KindInt, I: r, Status: value.Init}
			return out, nil
		})
	}
	realBinop := func(key, emit string, fn func(a, b float64) float64) {
		t.install(key, emit, func(args []*value.Value) (*value.Value, error) {
			out := &value.Value{Kind: value.KindReal, R: fn(mustReal(args[0]), mustReal(args[1])), Status: value.Init}
			return out, nil
		})
	}

	intBinop("+:int", "genie_plus_int", func(a, b int64) (int64, error) { return a + b, nil })
	intBinop("-:int", "genie_minus_int", func(a, b int64) (int64, error) { return a - b, nil })
	intBinop("*:int", "genie_times_int", func(a, b int64) (int64, error) { return a * b, nil })
	intBinop("OVER:int", "genie_over_int", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, diag.New(diag.SeverityRuntime, diag.CategoryMathError, "integer division by zero")
		}
		return a / b, nil
	})
	intBinop("MOD:int", "genie_mod_int", func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, diag.New(diag.SeverityRuntime, diag.CategoryMathError, "MOD by zero")
		}
		m := a % b
		if m < 0 {
			m += b
		}
		return m, nil
	})

	realBinop("+:real", "genie_plus_real", func(a, b float64) float64 { return a + b })
	realBinop("-:real", "genie_minus_real", func(a, b float64) float64 { return a - b })
	realBinop("*:real", "genie_times_real", func(a, b float64) float64 { return a * b })
	t.install("/:real", "genie_div_real", func(args []*value.Value) (*value.Value, error) {
		b := mustReal(args[1])
		if b == 0 {
			return nil, diag.New(diag.SeverityMathWarning, diag.CategoryMathError, "division by zero")
		}
		return &value.Value{Kind: value.KindReal, R: mustReal(args[0]) / b, Status: value.Init}, nil
	})

	t.install("-:int.monadic", "genie_negate_int", func(args []*value.Value) (*value.Value, error) {
		return &value.Value{Kind: value.KindInt, I: -mustInt(args[0]), Status: value.Init}, nil
	})
	t.install("ABS:real", "genie_abs_real", func(args []*value.Value) (*value.Value, error) {
		return &value.Value{Kind: value.KindReal, R: math.Abs(mustReal(args[0])), Status: value.Init}, nil
	})
	t.install("SQRT:real", "genie_sqrt_real", func(args []*value.Value) (*value.Value, error) {
		x := mustReal(args[0])
		if x < 0 {
			return nil, diag.New(diag.SeverityMathWarning, diag.CategoryMathError, "sqrt of negative operand")
		}
		return &value.Value{Kind: value.KindReal, R: math.Sqrt(x), Status: value.Init}, nil
	})
}

func (t *Table) installRelational() {
	cmp := func(key, emit string, fn func(a, b int64) bool) {
		t.install(key, emit, func(args []*value.Value) (*value.Value, error) {
			return &value.Value{Kind: value.KindBool, B: fn(mustInt(args[0]), mustInt(args[1])), Status: value.Init}, nil
		})
	}
	cmp("=:int", "genie_eq_int", func(a, b int64) bool { return a == b })
	cmp("/=:int", "genie_ne_int", func(a, b int64) bool { return a != b })
	cmp("<:int", "genie_lt_int", func(a, b int64) bool { return a < b })
	cmp("<=:int", "genie_le_int", func(a, b int64) bool { return a <= b })
	cmp(">:int", "genie_gt_int", func(a, b int64) bool { return a > b })
	cmp(">=:int", "genie_ge_int", func(a, b int64) bool { return a >= b })
}

// installRNG wires §6's persistent combined-Tausworthe generator as
// the NEXT RANDOM standenv proc, carrying its state across calls in
// the closure (mirroring the original's single process-wide `.Random`
// slot, scoped here to one Table instance instead of a C global).
func (t *Table) installRNG() {
	state := rng.Seed(1)
	t.install("NEXTRANDOM:real", "genie_next_random", func(args []*value.Value) (*value.Value, error) {
		x := rng.Next(&state)
		return &value.Value{Kind: value.KindReal, R: x, Status: value.Init}, nil
	})
}

// ProcTagFor builds the tree.Tag a parser/tree-builder would install
// for a standenv entry, so genie's identifier/formula dispatch finds
// it through the ordinary tag-lookup path rather than a special case.
func ProcTagFor(e Entry, mode *tree.Mode, level, offset int) *tree.Tag {
	return &tree.Tag{
		Name:  e.Key,
		Kind:  tree.TagOperator,
		Mode:  mode,
		Level: level,
		Offset: offset,
		Status: tree.StatusInit,
	}
}
