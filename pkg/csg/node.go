// Package csg builds a typed tree from the flat leveled records of an
// OpenSCAD .csg dump and answers semantic questions about it: parameter
// lookup, dummy-node detection and 2-D/3-D dimension resolution. The tree
// is built once; the only later mutation is assigning a parameter-derived
// transform to a node.
package csg

import (
	"fmt"
	"strings"

	"github.com/chazu/sapwood/pkg/value"
)

// rootSignature is the synthetic signature given to the implicit wrapper
// node at level -1. A .csg document may legally contain multiple
// independent top-level shapes, so the root is never a real source node.
const rootSignature = "root()"

// Node is one call in the source tree. A Node exclusively owns its
// children; a non-root node's Level is its parent's Level+1.
type Node struct {
	Level     int
	Line      int
	Signature string
	Children  []*Node

	params    map[string]value.Value
	matrix    Mat4
	hasMatrix bool
}

// NewNode builds a node from one source record, parsing its parameter list.
func NewNode(level, line int, signature string) *Node {
	return &Node{
		Level:     level,
		Line:      line,
		Signature: signature,
		params:    parseParams(signature),
	}
}

// newRoot returns the synthetic level -1 wrapper node.
func newRoot() *Node {
	return NewNode(-1, 0, rootSignature)
}

// IsRoot reports whether this is the synthetic wrapper node.
func (n *Node) IsRoot() bool { return n.Level == -1 }

// Tag returns the function name, i.e. the signature up to the first '('.
func (n *Node) Tag() string {
	if i := strings.IndexByte(n.Signature, '('); i >= 0 {
		return n.Signature[:i]
	}
	return n.Signature
}

// Lookup returns the named parameter if present.
func (n *Node) Lookup(name string) (value.Value, bool) {
	v, ok := n.params[name]
	return v, ok
}

// Value returns a required parameter, failing with a diagnostic naming the
// parameter and tag when it is absent.
func (n *Node) Value(name string) (value.Value, error) {
	if v, ok := n.params[name]; ok {
		return v, nil
	}
	return nil, nodeErrorf(n, "parameter '%s' not found", name)
}

// Scalar returns a required parameter rendered as its literal text.
func (n *Node) Scalar(name string) (string, error) {
	v, err := n.Value(name)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Float returns a required numeric parameter.
func (n *Node) Float(name string) (float64, error) {
	v, err := n.Value(name)
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

// IsDummy reports whether the node has no net geometric content: a wrapper
// (group) node that is empty, or whose children are all themselves dummy.
func (n *Node) IsDummy() bool {
	if n.Tag() != "group" {
		return false
	}
	for _, c := range n.Children {
		if !c.IsDummy() {
			return false
		}
	}
	return true
}

// CountChildren returns the number of non-dummy children.
func (n *Node) CountChildren() int {
	nc := 0
	for _, c := range n.Children {
		if !c.IsDummy() {
			nc++
		}
	}
	return nc
}

// Matrix returns the node's transform. Meaningful only when HasMatrix.
func (n *Node) Matrix() Mat4 { return n.matrix }

// HasMatrix reports whether a transform has been assigned to this node.
func (n *Node) HasMatrix() bool { return n.hasMatrix }

// SetMatrix assigns the node's transform.
func (n *Node) SetMatrix(m Mat4) {
	n.matrix = m
	n.hasMatrix = true
}

// ParamName returns the generated name assigned to the positional
// parameter at 0-based position i, e.g. "_p000". Some source tags
// (multmatrix) supply parameters without names; encoders look these up
// positionally.
func ParamName(i int) string {
	return fmt.Sprintf("_p%03d", i)
}
