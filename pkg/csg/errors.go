package csg

import (
	"fmt"
	"strings"
)

// Error is a fatal conversion failure. It carries the source line number,
// the offending tag or parameter, and the full original signature so the
// caller can point the user at the exact spot in the .csg document.
// All failures are deterministic input-validation failures; there is no
// retry, the whole conversion aborts on the first one.
type Error struct {
	Line      int
	Tag       string
	Signature string
	Message   string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, ".csg line %d", e.Line)
	if e.Tag != "" {
		fmt.Fprintf(&b, ": '%s'", e.Tag)
	}
	fmt.Fprintf(&b, ": %s", e.Message)
	if e.Signature != "" {
		fmt.Fprintf(&b, ": %s", e.Signature)
	}
	return b.String()
}

// nodeErrorf builds an Error positioned at the given node.
func nodeErrorf(n *Node, format string, args ...any) *Error {
	return &Error{
		Line:      n.Line,
		Tag:       n.Tag(),
		Signature: n.Signature,
		Message:   fmt.Sprintf(format, args...),
	}
}
