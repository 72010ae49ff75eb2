// Package tree holds the data model the interpreter consumes from its
// parser/mode-checker collaborator: syntax nodes, modes and tags (§3).
// Nothing in this package builds or checks a tree; it only describes the
// shape genie, codegen and monitor agree on.
package tree

// Status is the per-node bitmask named in §3 ("status bitmask").
type Status uint32

const StatusNone Status = 0

const (
	// StatusInit marks a value or declaration as already initialised.
	StatusInit Status = 1 << iota

	// StatusConstant marks a node whose evaluation is side-effect-free
	// and frame-independent (invariant 7).
	StatusConstant

	// StatusAssert marks a unit guarded by an ASSERT clause.
	StatusAssert

	// StatusSkip marks a node the generator/interpreter should treat as
	// a no-op (used for standenv procs installed without a body).
	StatusSkip

	// StatusSequenceCached marks that a clause's worklist (C4 §4.4) has
	// been built.
	StatusSequenceCached

	// StatusOptimalDispatch marks a clause whose worklist has exactly
	// one entry (the OPTIMAL flag of §4.4).
	StatusOptimalDispatch

	// StatusBreakpoint through StatusBreakpointTrace are the six monitor
	// entry triggers enumerated in §4.7.
	StatusBreakpoint
	StatusBreakpointTemporary
	StatusBreakpointWatch
	StatusBreakpointInterrupt
	StatusBreakpointError
	StatusBreakpointTrace
)

// Has reports whether all bits of mask are set in s.
func (s Status) Has(mask Status) bool { return s&mask == mask }

// Any reports whether any bit of mask is set in s.
func (s Status) Any(mask Status) bool { return s&mask != 0 }

// Set returns s with mask set.
func (s Status) Set(mask Status) Status { return s | mask }

// Clear returns s with mask cleared.
func (s Status) Clear(mask Status) Status { return s &^ mask }

// BreakpointMask is the union of all six monitor entry triggers, used by
// genie.Evaluate to decide in one comparison whether to re-enter the
// monitor (§4.7).
const BreakpointMask = StatusBreakpoint | StatusBreakpointTemporary |
	StatusBreakpointWatch | StatusBreakpointInterrupt |
	StatusBreakpointError | StatusBreakpointTrace
