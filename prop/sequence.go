package prop

import "github.com/algol68/genie/tree"

// ThreadSequence builds the linear worklist of §4.4 "Sequence
// threading": the first time a serial clause is evaluated, consecutive
// unit/declaration nodes are linked via Node.Seq, so later traversals
// follow the worklist instead of descending Sub/Next again. Returns
// the worklist head (equal to the first child) and sets
// StatusSequenceCached / StatusOptimalDispatch on clause as
// appropriate.
func ThreadSequence(clause *tree.Node) *tree.Node {
	if clause.Status.Has(tree.StatusSequenceCached) {
		return clause.Seq
	}

	children := clause.Children()
	var head, tail *tree.Node
	for _, c := range children {
		if head == nil {
			head = c
		} else {
			tail.Seq = c
		}
		tail = c
	}

	clause.Seq = head
	clause.Status = clause.Status.Set(tree.StatusSequenceCached)
	if len(children) == 1 {
		clause.Status = clause.Status.Set(tree.StatusOptimalDispatch)
	}
	return head
}

// Worklist walks the threaded Seq chain from head, yielding every
// linked node in order. Callers that have not yet threaded the clause
// should call ThreadSequence first.
func Worklist(head *tree.Node) []*tree.Node {
	var out []*tree.Node
	for n := head; n != nil; n = n.Seq {
		out = append(out, n)
	}
	return out
}
