package value

import "github.com/algol68/genie/tree"

// ProcStatus mirrors §3's PROC status bits ("standenv, skip").
type ProcStatus uint8

const (
	ProcNone     ProcStatus = 0
	ProcStandenv ProcStatus = 1 << iota
	ProcSkip
)

// LocaleSlot is one (present-flag, slot) pair of a PROC's locale, the
// side buffer capturing partially supplied arguments (§4.5 "Procedure
// call", GLOSSARY "Locale").
type LocaleSlot struct {
	Present bool
	Value   *Value
	// Scope is the call-site scope of the argument that filled this
	// slot — SPEC_FULL.md open-question decision 3: a Partial's
	// captured arguments carry the scope of the call that filled them,
	// not the proc's declaration scope, so invariant 2 composes
	// transitively through repeated partial application.
	Scope int
}

// Proc is a PROC value: DESIGN NOTES' "Full{body, env} |
// Partial{body, env, filled_args}" sum type, modelled as one struct.
// Partial is non-empty Locale with at least one slot not Present; a
// zero-parameter PROC or a PROC built via NewFull is never partial.
type Proc struct {
	Body    *tree.Node
	Environ Environ
	Status  ProcStatus

	// Locale is empty for a fully-applied PROC value, and carries one
	// slot per declared parameter while any remain unfilled.
	Locale []LocaleSlot

	// Standenv, when Status has ProcStandenv set, is the native Go
	// function implementing a standard-environment proc, called
	// directly without opening a frame (§4.5, GLOSSARY "Standenv
	// proc").
	Standenv func(args []*Value) (*Value, error)
}

// IsPartial reports whether p still has unfilled parameters.
func (p *Proc) IsPartial() bool {
	for _, s := range p.Locale {
		if !s.Present {
			return true
		}
	}
	return false
}

// NewFull returns a fully-applied PROC value.
func NewFull(body *tree.Node, env Environ) *Proc {
	return &Proc{Body: body, Environ: env}
}

// NewPartial returns a PROC value with nParams locale slots, none
// filled — used when a procedure tag is first bound to a body before
// any argument has been supplied.
func NewPartial(body *tree.Node, env Environ, nParams int) *Proc {
	return &Proc{Body: body, Environ: env, Locale: make([]LocaleSlot, nParams)}
}

// Fill returns a new Proc with argument i bound to v at the given
// call-site scope, per §4.5: "a call with remaining VOID parameters
// rebuilds a new PROC value rather than executing". The receiver is
// never mutated in place, matching the stowed-object engine's
// copy-on-write discipline elsewhere in the interpreter.
func (p *Proc) Fill(i int, v *Value, scope int) *Proc {
	np := &Proc{Body: p.Body, Environ: p.Environ, Status: p.Status, Standenv: p.Standenv}
	np.Locale = make([]LocaleSlot, len(p.Locale))
	copy(np.Locale, p.Locale)
	np.Locale[i] = LocaleSlot{Present: true, Value: v, Scope: scope}
	return np
}

// Args returns the filled locale values in order, once IsPartial is
// false, ready to push onto the expression stack for a call.
func (p *Proc) Args() []*Value {
	out := make([]*Value, len(p.Locale))
	for i, s := range p.Locale {
		out[i] = s.Value
	}
	return out
}
