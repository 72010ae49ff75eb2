package tree

// Attribute is the grammatical kind of a syntax node, set by the (out
// of scope) parser.
type Attribute uint16

const (
	AttrUnknown Attribute = iota
	AttrDenotation
	AttrIdentifier
	AttrFormula     // monadic or dyadic operator application
	AttrCall        // procedure call
	AttrSlice       // row subscripting/trimming
	AttrSelection   // struct field selection
	AttrCast
	AttrAssignation
	AttrIdentity    // IS / ISNT
	AttrAndF
	AttrOrF
	AttrClosedClause
	AttrConditional
	AttrIntegerCase
	AttrConformityCase
	AttrLoop
	AttrSerialClause
	AttrParallelClause
	AttrIdentityDecl
	AttrVariableDecl
	AttrProcedureDecl
	AttrOperatorDecl
	AttrModeDecl
	AttrPriorityDecl
	AttrGoto
	AttrLabel
	AttrGenerator // LOC / HEAP
	AttrCoercion
	AttrRowDisplay
	AttrStructDisplay
	AttrSkip
	AttrNihil
	AttrCode // CODE clause (reached = runtime error, §7)
)

// CoercionKind distinguishes the strict-Algol-68 coercions (§4.5) an
// AttrCoercion node performs. Stored on GenieInfo.CoerceKind.
type CoercionKind uint8

const (
	CoerceNone CoercionKind = iota
	CoerceVoiding
	CoerceUniting
	CoerceWidening
	CoerceRowing
	CoerceDereferencing
	CoerceDeproceduring
	CoerceProceduring
)

// GenieInfo is the empty slab the interpreter populates on a node as
// it runs: cached argument size, lexical level/offset, the compiled
// plugin export name once codegen promotes the node, and a constant
// blob for CONSTANT-tagged nodes (§3 "Node").
//
// The PROP itself (cached evaluator function + source pointer, §3
// "Node" / §4.4) is NOT stored here: per DESIGN.md's "Self-modifying
// PROP on shared nodes" decision it lives in a side-table keyed by
// Node.ID inside package prop, so nodes stay free of executable state
// and package tree never needs to import package prop.
type GenieInfo struct {
	ArgSize     int
	Level       int
	Offset      int
	CompileName string // set by codegen once a plugin export exists
	ConstBlob   []byte // cached bytes for StatusConstant nodes
	CoerceKind  CoercionKind

	// Loop-control fields for an AttrLoop node's FOR/FROM/BY/TO parts
	// (§4.5 "loop clause"). HasRange is false for a bare DO...OD, which
	// has none of FROM/BY/TO and loops until a GOTO breaks out of the
	// body. While holds the WHILE test, evaluated before every DO body
	// and re-read, not cached, since it may reference the loop tag.
	HasRange    bool
	From, To, By int
	While       *Node
}

// Node is a syntax-tree node as produced by the (out of scope) parser
// and mode checker, and consumed by genie/codegen/monitor (§3 "Node").
type Node struct {
	ID        int // stable identity, used as the PROP/sequence cache key
	Attribute Attribute
	Symbol    string
	Mode      *Mode
	Table     *Table // tag table rooted at this node, nil if it opens none
	Tag       *Tag   // the tag this node refers to (identifiers, labels)
	Info      GenieInfo
	Status    Status

	Sub    *Node // first child
	Next   *Node // next sibling
	Parent *Node

	// Seq is the sequence pointer of §4.4: once a serial clause's
	// worklist is threaded, Seq chains consecutive unit/declaration
	// nodes linearly, bypassing Sub/Next on later traversals.
	Seq *Node
}

// Children returns n's direct children as a slice, walking Sub/Next.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.Sub; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// Walk traverses n depth-first, calling in on entry and out on exit,
// exactly like the teacher's node.Walk (interp/interp.go) generalised
// from a single child slice to the Sub/Next sibling chain.
func (n *Node) Walk(in func(*Node) bool, out func(*Node)) {
	if n == nil {
		return
	}
	if in != nil && !in(n) {
		return
	}
	for c := n.Sub; c != nil; c = c.Next {
		c.Walk(in, out)
	}
	if out != nil {
		out(n)
	}
}

// IsCoercion reports whether n is a coercion node, routing
// genie.Evaluate to the coercion pipeline before the attribute switch
// (§4.5 "Node dispatch").
func (n *Node) IsCoercion() bool { return n.Attribute == AttrCoercion }

// idSeq assigns increasing stable IDs to freshly built nodes. It is a
// package-level counter because node identity must be unique across
// one compilation unit's whole tree, not per sub-tree.
var idSeq int

// NewNode allocates a node with a fresh ID. Parser/tree-builder
// collaborators call this; genie/codegen/monitor never construct
// nodes, only read them.
func NewNode(attr Attribute, symbol string, mode *Mode) *Node {
	idSeq++
	return &Node{ID: idSeq, Attribute: attr, Symbol: symbol, Mode: mode}
}

// Append adds child as the new last child of n.
func (n *Node) Append(child *Node) *Node {
	child.Parent = n
	if n.Sub == nil {
		n.Sub = child
		return n
	}
	c := n.Sub
	for c.Next != nil {
		c = c.Next
	}
	c.Next = child
	return n
}
