// Command genie is the CLI front end: it parses optimisation and
// debugging flags, builds the interpreter context, and evaluates a
// small demonstration program tree (§6 "CLI surface"). Grounded on the
// teacher's Options/New/REPL conventions (interp/interp.go) — stdlib
// `flag` only, no cobra/pflag, matching the teacher's own choice not
// to pull in a CLI framework.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/algol68/genie/codegen"
	"github.com/algol68/genie/genie"
	"github.com/algol68/genie/memory"
	"github.com/algol68/genie/monitor"
	"github.com/algol68/genie/prop"
	"github.com/algol68/genie/standenv"
	"github.com/algol68/genie/tree"
)

// Options mirrors the teacher's interp.Options shape: fields for the
// knobs a real `New(Options)` constructor would take, defaulting to
// the OS streams (§6 "Options struct").
type Options struct {
	Optimise      codegen.Level
	Check         bool
	Backtrace     bool
	Debug         bool
	CompileVersion bool

	Stdin          *os.File
	Stdout, Stderr *os.File
}

func parseFlags(args []string) (Options, error) {
	fs := flag.NewFlagSet("genie", flag.ContinueOnError)
	o0 := fs.Bool("O0", false, "disable the optimising code generator")
	o1 := fs.Bool("O1", false, "enable level-1 codegen eligibility")
	o2 := fs.Bool("O2", false, "enable level-2 codegen eligibility")
	o3 := fs.Bool("O3", false, "enable level-3 codegen eligibility")
	check := fs.Bool("check", false, "accepted and stored in Options.Check; it has no effect on the run or on generated code")
	backtrace := fs.Bool("backtrace", false, "print a frame backtrace on an uncaught error")
	debug := fs.Bool("debug", false, "re-enter the monitor at breakpoints and uncaught errors")
	compileVersion := fs.Bool("compile-version", false, "print the codegen plugin ABI version and exit")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	opt := Options{Check: *check, Backtrace: *backtrace, Debug: *debug, CompileVersion: *compileVersion}
	switch {
	case *o3:
		opt.Optimise = codegen.Level3
	case *o2:
		opt.Optimise = codegen.Level2
	case *o1:
		opt.Optimise = codegen.Level1
	case *o0:
		opt.Optimise = 0
	default:
		opt.Optimise = 0
	}
	return opt, nil
}

func main() {
	opt, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	if opt.Stdout == nil {
		opt.Stdout = os.Stdout
	}
	if opt.Stderr == nil {
		opt.Stderr = os.Stderr
	}

	if opt.CompileVersion {
		fmt.Fprintln(opt.Stdout, codegen.ABIVersion)
		return
	}

	if err := run(opt); err != nil {
		fmt.Fprintln(opt.Stderr, err)
		os.Exit(1)
	}
}

// run builds a genie.Context, seeds it from the standard environment,
// wires an optional monitor, and evaluates a small demonstration
// program (the (out-of-scope) parser would normally hand genie a real
// tree; this front end builds one by hand so `go run ./cmd/genie`
// exercises the whole pipeline end to end).
func run(opt Options) error {
	ctx := genie.NewContext(1 << 20)
	env := standenv.New()
	ctx.Standenv = env.Bindings()

	if opt.Optimise > 0 {
		ctx.Optimise = true
		linker, err := codegen.NewLinker()
		if err != nil {
			return err
		}
		defer linker.Close()
		ctx.TryNative = nativeTrier(linker, env, opt.Optimise)
	}

	if opt.Debug {
		breaks := monitor.NewSet()
		m := monitor.New(opt.Stdin, opt.Stdout, opt.Stderr, breaks)
		ctx.Break = m.Hook()
	}

	root := demoProgram()
	ctx.Frames = memory.NewFrame(nil, nil, root, len(root.Table.Tags))

	result, err := genie.Evaluate(ctx, root)
	if err != nil {
		if opt.Backtrace {
			printBacktrace(opt.Stderr, ctx)
		}
		return err
	}

	fmt.Fprintf(opt.Stdout, "result: %+v\n", result)
	return nil
}

// nativeTrier returns the genie.Context.TryNative hook that asks
// codegen whether a node is eligible, emits and compiles it into a
// plugin, and loads the result as the node's native PROP (§4.6
// "Call-in"). A compile failure is not fatal: it just means this node
// stays on generic dispatch, so the interpreter always has a fallback.
func nativeTrier(linker *codegen.Linker, env *standenv.Table, level codegen.Level) func(ctx *genie.Context, n *tree.Node) (*prop.Prop, bool) {
	return func(ctx *genie.Context, n *tree.Node) (*prop.Prop, bool) {
		if !codegen.Eligible(n, level) {
			return nil, false
		}
		emitter := codegen.NewEmitter(env)
		expr, err := emitter.Emit(n)
		if err != nil {
			return nil, false
		}
		funcName := fmt.Sprintf("genieUnit%d", n.ID)
		src := emitter.Source(funcName, expr)
		soPath, err := linker.Compile(funcName, src)
		if err != nil {
			return nil, false
		}
		sym, err := linker.Load(soPath, funcName)
		if err != nil {
			return nil, false
		}
		fn, ok := sym.(prop.EvalFunc)
		if !ok {
			return nil, false
		}
		return &prop.Prop{Eval: fn, Source: n, Spec: "native"}, true
	}
}

func printBacktrace(w *os.File, ctx *genie.Context) {
	for f := ctx.CurrentFrame(); f != nil; f = f.Dynamic {
		fmt.Fprintf(w, "  frame %d (level %d)\n", f.Number, f.LexLevel)
	}
}

// demoProgram builds `INT i = 40 + 2` as a hand-assembled tree, the
// smallest program that exercises a denotation, a formula dispatched
// through the standard environment, and an identity declaration
// binding a frame slot (§8 scenario 1's shape, without requiring the
// out-of-scope parser).
func demoProgram() *tree.Node {
	intMode := &tree.Mode{Cat: tree.CatInt, Size: 8, ShortID: "int", Name: "INT"}

	forty := tree.NewNode(tree.AttrDenotation, "40", intMode)
	forty.Info.ConstBlob = encodeInt(40)

	two := tree.NewNode(tree.AttrDenotation, "2", intMode)
	two.Info.ConstBlob = encodeInt(2)

	plusTag := &tree.Tag{Name: "+", Kind: tree.TagOperator, Mode: intMode}
	formula := tree.NewNode(tree.AttrFormula, "+", intMode)
	formula.Tag = plusTag
	formula.Append(forty)
	formula.Append(two)

	table := tree.NewTable(0)
	iTag := &tree.Tag{Name: "i", Kind: tree.TagIdentifier, Mode: intMode, Level: 0, Offset: 0}
	table.Declare(iTag)

	decl := tree.NewNode(tree.AttrIdentityDecl, "i", intMode)
	decl.Tag = iTag
	decl.Append(formula)

	serial := tree.NewNode(tree.AttrSerialClause, "", intMode)
	serial.Table = table
	serial.Append(decl)

	return serial
}

func encodeInt(x int64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(x >> (8 * i))
	}
	return b
}
