// Package contin implements C8's non-local jump model: instead of
// setjmp/longjmp, a GOTO produces a typed JumpRequest value that
// bubbles up the Go call stack as a regular return value until it
// reaches the serial clause that declared the target label (§4.8
// "Jump/label model").
package contin

import (
	"fmt"

	"github.com/algol68/genie/tree"
)

// JumpRequest is returned (wrapped as an error) by genie.Evaluate when
// a GOTO or an implicit jump-at-end-of-procedure fires. Every frame
// between the jump site and the label's declaring frame must propagate
// it unchanged; only the frame whose Table declares the target label
// may catch it (§4.8 "a JUMP_TO request is satisfied only by the frame
// that lexically encloses the label").
type JumpRequest struct {
	Target *tree.Tag

	// Unwind is the frame-number of the frame the jump was raised in
	// (genie's jumpTo records the current frame). Whether a frame
	// catches the jump is decided by Labels.Catches, not by this field.
	Unwind uint64
}

func (j *JumpRequest) Error() string {
	return fmt.Sprintf("goto %s", j.Target.Name)
}

// AsJump reports whether err is a JumpRequest, and returns it.
func AsJump(err error) (*JumpRequest, bool) {
	j, ok := err.(*JumpRequest)
	return j, ok
}

// Labels is the per-frame continuation state referenced by
// memory.Frame.Continuation: the set of labels this frame's Table
// declares, keyed by name, so a caught JumpRequest can be resolved to
// the label's node without a second tree walk.
type Labels struct {
	Targets map[string]*tree.Node
}

// NewLabels builds the continuation state for a frame whose Table
// declares the given label nodes.
func NewLabels(nodes []*tree.Node) *Labels {
	l := &Labels{Targets: make(map[string]*tree.Node, len(nodes))}
	for _, n := range nodes {
		l.Targets[n.Symbol] = n
	}
	return l
}

// Catches reports whether this frame's label set declares j's target,
// i.e. whether evaluation of the enclosing serial clause should resume
// at the label rather than re-propagating j to the caller.
func (l *Labels) Catches(j *JumpRequest) (*tree.Node, bool) {
	if l == nil {
		return nil, false
	}
	n, ok := l.Targets[j.Target.Name]
	return n, ok
}
