package tree

// TagKind distinguishes the five kinds of named entity a scope can
// hold (§3 "Tag").
type TagKind uint8

const (
	TagIdentifier TagKind = iota
	TagOperator
	TagLabel
	TagIndicant
	TagAnonymous
)

// Tag is a named entity in a lexical scope.
type Tag struct {
	Name  string
	Kind  TagKind
	Mode  *Mode
	Level int // lexical level of the defining frame
	Offset int // byte offset inside that frame

	// Body is the routine/procedure/format body node, non-nil only for
	// procedure-valued and format-valued tags.
	Body *Node

	Status Status // StatusConstant, StatusInit, ...
}

// IsConstant reports whether an identity declaration promoted this tag
// to CONSTANT (§4.5 "Declarations").
func (t *Tag) IsConstant() bool { return t.Status.Has(StatusConstant) }

// Table is the per-node-region symbol table: the set of tags visible
// starting at one lexical level, plus the slot used by GOTO (§4.8
// "JUMP_TO slot").
type Table struct {
	Level int
	Tags  map[string]*Tag

	// JumpTo, when non-nil, names the label a resumed serial clause
	// must skip forward to before resuming normal execution (§4.5
	// "Jumps and labels", §4.8).
	JumpTo *Tag
}

// NewTable allocates an empty symbol table at the given lexical level.
func NewTable(level int) *Table {
	return &Table{Level: level, Tags: make(map[string]*Tag)}
}

// Lookup finds a tag by name in this table only (no parent search;
// parent search is a tree.Node.parent walk, since tables nest with
// their owning node).
func (tb *Table) Lookup(name string) (*Tag, bool) {
	t, ok := tb.Tags[name]
	return t, ok
}

// Declare adds tag to the table, keyed by name.
func (tb *Table) Declare(tag *Tag) { tb.Tags[tag.Name] = tag }
