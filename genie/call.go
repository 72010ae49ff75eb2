package genie

import (
	"github.com/algol68/genie/memory"
	"github.com/algol68/genie/tree"
	"github.com/algol68/genie/value"
)

// Call implements procedure call and locale partial application
// (§4.5 "Procedure call", GLOSSARY "Locale"). An AttrCall node's first
// child is the PROC-valued operand, the rest are argument units; a
// call that supplies fewer arguments than the PROC's parameter pack
// rebuilds a Partial value instead of opening a frame (DESIGN NOTES
// "Full{body,env} | Partial{body,env,filled_args}").
func Call(ctx *Context, n *tree.Node) (*value.Value, error) {
	children := n.Children()
	if len(children) == 0 {
		return nil, raiseInternal("genie: call node %d has no operand", n.ID)
	}
	callee, err := Evaluate(ctx, children[0])
	if err != nil {
		return nil, err
	}
	if callee.Kind != value.KindProc {
		return nil, raiseInternal("genie: call operand on node %d is not a PROC value", n.ID)
	}
	args := children[1:]

	callSiteScope := ctx.CurrentFrame().Level()
	proc := callee.Proc
	if len(proc.Locale) == 0 && len(args) > 0 {
		proc = value.NewPartial(proc.Body, proc.Environ, len(args))
		proc.Status = callee.Proc.Status
		proc.Standenv = callee.Proc.Standenv
	}

	nextSlot := 0
	for i := range proc.Locale {
		if proc.Locale[i].Present {
			continue
		}
		if nextSlot >= len(args) {
			break
		}
		v, err := Evaluate(ctx, args[nextSlot])
		if err != nil {
			return nil, err
		}
		proc = proc.Fill(i, v, callSiteScope)
		nextSlot++
	}

	if proc.IsPartial() {
		out := value.Zero(n.Mode)
		out.Kind = value.KindProc
		out.Proc = proc
		out.MarkInit()
		return out, nil
	}

	return invoke(ctx, n, proc)
}

// callDeferred implements the deproceduring coercion: calling a
// zero-parameter PROC value automatically (§4.5).
func callDeferred(ctx *Context, p *value.Value) (*value.Value, error) {
	if p.Kind != value.KindProc {
		return p, nil
	}
	return invoke(ctx, p.Proc.Body, p.Proc)
}

// invoke runs a fully-applied Proc: a standenv proc calls straight
// into Go, a user procedure opens a new frame statically linked to
// its captured Environ (§4.5 "Procedure call" closure semantics).
func invoke(ctx *Context, site *tree.Node, proc *value.Proc) (*value.Value, error) {
	if proc.Status&value.ProcStandenv != 0 && proc.Standenv != nil {
		return proc.Standenv(proc.Args())
	}
	if proc.Body == nil {
		return nil, raiseInternal("genie: procedure value has neither a body nor a standenv implementation")
	}

	staticParent, _ := proc.Environ.(*memory.Frame)
	length := 0
	if proc.Body.Table != nil {
		length = len(proc.Body.Table.Tags)
	}
	caller := ctx.CurrentFrame()
	frame := memory.NewFrame(caller, staticParent, proc.Body, length)
	frame.IsProcedureFrame = true
	frame.DNS = frame.LexLevel

	args := proc.Args()
	for i, a := range args {
		frame.Set(i, a)
	}

	if err := ctx.CheckOverflow(length); err != nil {
		return nil, err
	}

	ctx.PushFrame(frame)
	out, err := Evaluate(ctx, proc.Body)
	ctx.PopFrame()

	// A JumpRequest that escapes all the way out of a procedure's body
	// is a GOTO into a deeper frame than the one the label declared it
	// in (§4.8): propagate it unchanged, invoke's caller keeps unwinding.
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = value.Zero(proc.Body.Mode)
	}
	return out, nil
}
