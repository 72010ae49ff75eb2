package monitor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/algol68/genie/genie"
	"github.com/algol68/genie/memory"
	"github.com/algol68/genie/tree"
)

// command is one monitor verb, matched by unambiguous prefix (§4.7 "the
// monitor recognises any unambiguous prefix of a command name").
type command struct {
	name string
	help string
	run  func(m *Monitor, args []string) error
}

// Monitor is the interactive debugger: a REPL that re-enters at a
// breaked node, showing and mutating the live frame chain. Grounded on
// interp.Interpreter's stdin/stdout/stderr triple and REPL/doPrompt/
// getPrompt (interp/interp.go), generalised from "evaluate Go source"
// to "evaluate monitor commands".
type Monitor struct {
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	Breaks *Set

	// Frame is the breaked node the monitor is currently inspecting,
	// and Live is that node's current frame; Enter sets both.
	Frame *tree.Node // breaked node, for `list`/`where`
	Live  *memory.Frame

	// Ctx is the live interpreter context the monitor re-enters
	// through, set by Hook on every break; nil until the first break
	// (e.g. in tests that exercise dispatch directly).
	Ctx *genie.Context

	commands []command

	// quit signals the REPL's command loop to stop after the current
	// command, used by `continue`/`quit`.
	quit bool
}

// New builds a Monitor wired to the given streams, defaulting to
// os.Stdin/Stdout/Stderr exactly like interp.Options (§6 "Options
// struct... Stdin, Stdout, Stderr default to the OS streams").
func New(in io.Reader, out, errs io.Writer, breaks *Set) *Monitor {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if errs == nil {
		errs = os.Stderr
	}
	m := &Monitor{Stdin: in, Stdout: out, Stderr: errs, Breaks: breaks}
	m.commands = m.builtinCommands()
	return m
}

// Enter re-enters the monitor at a breaked node (§4.7 "with --debug the
// monitor is re-entered at the failing node"): it runs a small REPL
// over Stdin until a `continue`/`step`/`quit` command ends the
// session, at which point Enter returns and the interpreter resumes.
func (m *Monitor) Enter(n *tree.Node, frame *memory.Frame) error {
	m.Frame = n
	m.Live = frame
	m.quit = false
	if m.Breaks != nil {
		// A temporary breakpoint (step/next/finish) is one-shot: clear it
		// the moment it fires so the next pass over this node runs free.
		m.Breaks.ClearBreak(n, tree.StatusBreakpointTemporary)
	}

	prompt := getPrompt(m.Stdin, m.Stdout)
	s := bufio.NewScanner(m.Stdin)

	fmt.Fprintf(m.Stdout, "breakpoint at node %d (%s)\n", n.ID, n.Symbol)
	prompt()
	for !m.quit && s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			prompt()
			continue
		}
		if err := m.dispatch(line); err != nil {
			fmt.Fprintln(m.Stderr, err)
		}
		if !m.quit {
			prompt()
		}
	}
	return nil
}

// dispatch resolves line's leading word against m.commands by
// unambiguous prefix match (§4.7) and runs it.
func (m *Monitor) dispatch(line string) error {
	fields := strings.Fields(line)
	verb, args := fields[0], fields[1:]

	var matches []command
	for _, c := range m.commands {
		if c.name == verb {
			matches = []command{c}
			break
		}
		if strings.HasPrefix(c.name, verb) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return fmt.Errorf("monitor: unknown command %q", verb)
	case 1:
		return matches[0].run(m, args)
	default:
		names := make([]string, len(matches))
		for i, c := range matches {
			names[i] = c.name
		}
		return fmt.Errorf("monitor: %q is ambiguous between %s", verb, strings.Join(names, ", "))
	}
}

func (m *Monitor) builtinCommands() []command {
	return []command{
		{name: "continue", help: "resume execution", run: func(m *Monitor, _ []string) error {
			m.quit = true
			return nil
		}},
		{name: "quit", help: "abort the program", run: func(m *Monitor, _ []string) error {
			m.quit = true
			return fmt.Errorf("monitor: program aborted from the monitor")
		}},
		{name: "where", help: "print the current frame chain", run: func(m *Monitor, _ []string) error {
			for f := m.Live; f != nil; f = f.Dynamic {
				fmt.Fprintf(m.Stdout, "frame %d (level %d)\n", f.Number, f.LexLevel)
			}
			return nil
		}},
		{name: "frame", help: "show slot N of the current frame", run: func(m *Monitor, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("monitor: usage: frame N")
			}
			i, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			v := m.Live.Get(i)
			fmt.Fprintf(m.Stdout, "slot %d: %+v\n", i, v)
			return nil
		}},
		{name: "break", help: "set a breakpoint kind on the current node", run: func(m *Monitor, _ []string) error {
			m.Breaks.SetBreak(m.Frame, tree.StatusBreakpoint)
			return nil
		}},
		{name: "list", help: "show the breaked node's id and symbol", run: func(m *Monitor, _ []string) error {
			fmt.Fprintf(m.Stdout, "node %d: %s\n", m.Frame.ID, m.Frame.Symbol)
			return nil
		}},
		{name: "heap", help: "print heap usage statistics", run: func(m *Monitor, _ []string) error {
			if m.Ctx == nil {
				return fmt.Errorf("monitor: heap needs a live context")
			}
			st := m.Ctx.Heap.Snapshot()
			fmt.Fprintf(m.Stdout, "heap: %d/%d bytes used, %d live handles, %d collections, %d last reclaimed\n",
				st.Used, st.Limit, st.LiveHandles, st.Collections, st.LastReclaimed)
			return nil
		}},
		{name: "sizes", help: "print PROP cache occupancy and expression stack depth", run: func(m *Monitor, _ []string) error {
			if m.Ctx == nil {
				return fmt.Errorf("monitor: sizes needs a live context")
			}
			fmt.Fprintf(m.Stdout, "prop cache: %d entries, expression stack: %d deep\n",
				m.Ctx.Cache.Len(), m.Ctx.ExprDepth())
			return nil
		}},
		{name: "step", help: "run until the breaked node's first child breaks", run: func(m *Monitor, _ []string) error {
			target := m.Frame.Sub
			if target == nil {
				target = m.Frame.Next
			}
			if target != nil {
				m.Breaks.SetBreak(target, tree.StatusBreakpointTemporary)
			}
			m.quit = true
			return nil
		}},
		{name: "next", help: "run until the breaked node's next sibling breaks, stepping over children", run: func(m *Monitor, _ []string) error {
			target := m.Frame.Next
			if target == nil && m.Frame.Parent != nil {
				target = m.Frame.Parent.Next
			}
			if target != nil {
				m.Breaks.SetBreak(target, tree.StatusBreakpointTemporary)
			}
			m.quit = true
			return nil
		}},
		{name: "finish", help: "run until the enclosing clause's continuation breaks", run: func(m *Monitor, _ []string) error {
			if m.Frame.Parent != nil && m.Frame.Parent.Next != nil {
				m.Breaks.SetBreak(m.Frame.Parent.Next, tree.StatusBreakpointTemporary)
			}
			m.quit = true
			return nil
		}},
		{name: "print", help: "re-evaluate the breaked node and print its value", run: func(m *Monitor, _ []string) error {
			if m.Ctx == nil {
				return fmt.Errorf("monitor: print needs a live context")
			}
			out, err := EvalExpr(m.Ctx, m.Frame)
			if err != nil {
				return err
			}
			fmt.Fprintln(m.Stdout, out)
			return nil
		}},
	}
}

// getPrompt returns a function that prints a prompt only if Stdin is a
// terminal, exactly mirroring the teacher's getPrompt/doPrompt pair
// (interp/interp.go), generalised from printing an evaluated
// reflect.Value to printing a bare "(genie) " prompt.
func getPrompt(in io.Reader, out io.Writer) func() {
	s, ok := in.(interface{ Stat() (os.FileInfo, error) })
	if !ok {
		return func() {}
	}
	stat, err := s.Stat()
	if err == nil && stat.Mode()&os.ModeCharDevice != 0 {
		return func() { fmt.Fprint(out, "(genie) ") }
	}
	return func() {}
}
