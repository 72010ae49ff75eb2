package tree

import "fmt"

// Cat is the mode category (§3 "A mode is one of: primitive; REF of
// mode; PROC of parameter-pack → mode; ROW of mode; FLEX ROW of mode;
// STRUCT; UNION").
type Cat uint8

const (
	CatVoid Cat = iota
	CatInt
	CatReal
	CatBool
	CatChar
	CatBits
	CatBytes
	CatFormat
	CatFile
	CatChannel
	CatSound
	CatLongInt
	CatLongReal
	CatComplex
	CatLongComplex
	CatRef
	CatProc
	CatRow
	CatFlexRow
	CatStruct
	CatUnion
)

// Field is one named component of a STRUCT mode, in declared order
// (§3: "STRUCT with ordered named fields").
type Field struct {
	Name   string
	Mode   *Mode
	Offset int // byte offset inside the struct
}

// Mode is a resolved Algol 68 type. Modes are built by the (out of
// scope) mode checker and handed to the interpreter as immutable,
// already-sized values; genie and codegen only ever read them.
type Mode struct {
	Cat Cat

	// Of is the target/element mode for REF, PROC-return, ROW and
	// FLEX ROW modes.
	Of *Mode

	// Params holds a PROC's parameter-pack modes, in order.
	Params []*Mode

	// Fields holds a STRUCT's ordered named fields, or a UNION's
	// unordered members (Offset is unused for UNION members).
	Fields []Field

	// Dims is the rank of a ROW/FLEX ROW mode.
	Dims int

	// Size is the mode's value footprint in bytes on the stack/frame.
	Size int

	// Digits is the digit count for multiprecision (LONG) variants;
	// zero for everything else.
	Digits int

	// ShortID is the dispatch key used by the PROP cache and codegen's
	// eligibility predicate to recognise "the same kind of mode"
	// cheaply without deep structural comparison.
	ShortID string

	// Name is a human-readable rendering, used by diagnostics.
	Name string
}

// IsPrimitive reports whether m is one of the flat primitive modes.
func (m *Mode) IsPrimitive() bool {
	switch m.Cat {
	case CatInt, CatReal, CatBool, CatChar, CatBits, CatLongInt,
		CatLongReal, CatComplex, CatLongComplex, CatBytes, CatVoid:
		return true
	}
	return false
}

// IsRow reports whether m is a ROW or FLEX ROW mode (stowed, per C3).
func (m *Mode) IsRow() bool { return m.Cat == CatRow || m.Cat == CatFlexRow }

// IsStowed reports whether values of m require the stowed-object
// engine (C3) for copying: rows, structs and unions that embed rows.
func (m *Mode) IsStowed() bool {
	switch m.Cat {
	case CatRow, CatFlexRow, CatStruct, CatUnion, CatSound:
		return true
	}
	return false
}

// Flex reports whether a ROW mode is flexible (may be re-generated to
// a new bound by an assignment).
func (m *Mode) Flex() bool { return m.Cat == CatFlexRow }

func (m *Mode) String() string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("mode#%s", m.ShortID)
}

// Deref returns the target mode of a REF mode, or m itself otherwise.
func (m *Mode) Deref() *Mode {
	if m.Cat == CatRef && m.Of != nil {
		return m.Of
	}
	return m
}

// NewRef builds a REF mode over of.
func NewRef(of *Mode) *Mode {
	return &Mode{Cat: CatRef, Of: of, Size: RefSize, ShortID: "ref:" + of.ShortID, Name: "REF " + of.String()}
}

// RefSize is the fixed on-stack footprint of any REF value: a handle
// pointer plus offset plus scope level plus a heap/stack/frame
// discriminator (§3 "Value" → REF).
const RefSize = 24
