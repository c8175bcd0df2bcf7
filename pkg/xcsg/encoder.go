package xcsg

import (
	"fmt"
	"strings"

	"github.com/chazu/sapwood/pkg/csg"
	"github.com/chazu/sapwood/pkg/xmltree"
)

// Encoder translates a source tree into xcsg output nodes. It owns the tag
// mapping table; tests may construct one around a substitute table.
type Encoder struct {
	tags TagMap
}

// NewEncoder returns an Encoder using the given mapping table.
func NewEncoder(tags TagMap) *Encoder {
	return &Encoder{tags: tags}
}

// errf builds a conversion error positioned at the given node.
func errf(n *csg.Node, format string, args ...any) *csg.Error {
	return &csg.Error{
		Line:      n.Line,
		Tag:       n.Tag(),
		Signature: n.Signature,
		Message:   fmt.Sprintf(format, args...),
	}
}

// Encode writes the tree rooted at the synthetic root node under parent.
// The root is always emitted as a union wrapper, since a source document
// may contain multiple independent top-level shapes. An empty document
// emits an empty union3d.
func (e *Encoder) Encode(root *csg.Node, parent *xmltree.Node) error {
	if !root.IsRoot() {
		return e.encodeNode(root, parent)
	}
	dim, err := root.Dimension()
	if err != nil {
		return err
	}
	tag := "union3d"
	if dim == 2 {
		tag = "union2d"
	}
	out := parent.AddChild(tag)
	for _, c := range root.Children {
		if err := e.encodeNode(c, out); err != nil {
			return err
		}
	}
	return nil
}

// encodeNode emits one source node and its subtree. Subtrees that establish
// no dimension carry no geometry and are skipped entirely.
func (e *Encoder) encodeNode(n *csg.Node, parent *xmltree.Node) error {
	dim, err := n.Dimension()
	if err != nil {
		return err
	}
	if dim == 0 {
		return nil
	}

	// multmatrix carries its matrix as a positional parameter; it must be
	// assigned before encoding so the transform block is emitted below.
	if n.Tag() == "multmatrix" {
		if err := assignMatrix(n); err != nil {
			return err
		}
	}

	template, ok := e.tags[n.Tag()]
	if !ok {
		return errf(n, "not supported")
	}
	tag, err := e.fixTag(n, template)
	if err != nil {
		return err
	}
	tag = degradeSingleChild(tag, n)

	out := parent.AddChild(tag)
	out, err = e.encodeShape(n, tag, out)
	if err != nil {
		return err
	}

	if n.HasMatrix() {
		writeTransform(out, n.Matrix())
	}

	for _, c := range n.Children {
		if err := e.encodeNode(c, out); err != nil {
			return err
		}
	}
	return nil
}

// fixTag resolves a mapping template to a concrete tag. Templates without
// the '*' marker pass through unchanged; polymorphic templates get the
// node's dimension suffix appended.
func (e *Encoder) fixTag(n *csg.Node, template string) (string, error) {
	if !strings.HasSuffix(template, "*") {
		return template, nil
	}
	dim, err := n.Dimension()
	if err != nil {
		return "", err
	}
	base := template[:len(template)-1]
	switch dim {
	case 2:
		return base + "2d", nil
	case 3:
		return base + "3d", nil
	}
	return "", errf(n, "node dimension could not be determined for '%s'", template)
}

// degradeSingleChild rewrites difference/intersection on exactly one
// non-dummy child into the union of the same dimension. The source schema
// allows the single-child form as a no-op; the target schema forbids it.
func degradeSingleChild(tag string, n *csg.Node) string {
	if n.CountChildren() != 1 {
		return tag
	}
	switch tag {
	case "difference3d", "intersection3d":
		return "union3d"
	case "difference2d", "intersection2d":
		return "union2d"
	}
	return tag
}

// encodeShape dispatches to the per-tag encoding routine. It returns the
// output node the caller should attach children to, which differs from out
// only for projection in cut mode.
func (e *Encoder) encodeShape(n *csg.Node, tag string, out *xmltree.Node) (*xmltree.Node, error) {
	switch tag {
	case "circle":
		return out, encodeCircle(n, out)
	case "rectangle":
		return out, encodeRectangle(n, out)
	case "polygon":
		return out, encodePolygon(n, out)
	case "offset2d":
		return out, encodeOffset(n, out)
	case "cone":
		return out, encodeCone(n, out)
	case "sphere":
		return out, encodeSphere(n, out)
	case "cuboid":
		return out, encodeCuboid(n, out)
	case "sweep":
		return out, encodeSweep(n, out)
	case "rotate_extrude":
		return out, encodeRotateExtrude(n, out)
	case "polyhedron":
		return out, encodePolyhedron(n, out)
	case "projection2d":
		return encodeProjection(n, out)
	}

	switch {
	case strings.HasPrefix(tag, "diff"), strings.HasPrefix(tag, "inte"), strings.HasPrefix(tag, "mink"):
		if n.CountChildren() < 2 {
			return nil, errf(n, "fewer than 2 children provided to '%s' -> %s", n.Tag(), tag)
		}
		return out, checkChildDimensions(n, tag)
	case strings.HasPrefix(tag, "unio"), strings.HasPrefix(tag, "hull"):
		return out, checkChildDimensions(n, tag)
	}
	return nil, errf(n, "not supported: '%s' -> %s", n.Tag(), tag)
}

// checkChildDimensions rejects boolean operators whose non-dummy children
// resolve to different dimensions.
func checkChildDimensions(n *csg.Node, tag string) error {
	seen := 0
	for _, c := range n.Children {
		if c.IsDummy() {
			continue
		}
		dim, err := c.Dimension()
		if err != nil {
			return err
		}
		if dim == 0 {
			continue
		}
		if seen != 0 && dim != seen {
			return errf(n, "mixed dimension children provided to '%s' -> %s", n.Tag(), tag)
		}
		seen = dim
	}
	return nil
}
