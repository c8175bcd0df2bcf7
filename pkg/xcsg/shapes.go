package xcsg

import (
	"github.com/chazu/sapwood/pkg/csg"
	"github.com/chazu/sapwood/pkg/value"
	"github.com/chazu/sapwood/pkg/xmltree"
)

// Dimensions of the thin slab used to approximate a planar cut in
// projection(cut=true). Intentionally a numerical approximation.
const (
	cutSlabExtent    = 1.0e4
	cutSlabThickness = 1.0e-4
)

// encodeCircle emits a 2-D circle.
func encodeCircle(n *csg.Node, out *xmltree.Node) error {
	r, err := n.Float("r")
	if err != nil {
		return err
	}
	if r <= 0 {
		return errf(n, "r must be > 0, got %g", r)
	}
	out.AddProperty("r", r)
	return nil
}

// encodeRectangle emits a 2-D rectangle from a square node. The size
// parameter is a scalar applied to both axes or a per-axis vector.
func encodeRectangle(n *csg.Node, out *xmltree.Node) error {
	siz, err := n.Value("size")
	if err != nil {
		return err
	}
	dx, dy := siz.Float(), siz.Float()
	if siz.Size() > 1 {
		dx = siz.Get(0).Float()
		dy = siz.Get(1).Float()
	}
	if dx <= 0 {
		return errf(n, "dx must be > 0, got %g", dx)
	}
	if dy <= 0 {
		return errf(n, "dy must be > 0, got %g", dy)
	}
	center, err := n.Scalar("center")
	if err != nil {
		return err
	}
	out.AddProperty("dx", dx)
	out.AddProperty("dy", dy)
	out.AddProperty("center", center)
	return nil
}

// encodeCuboid emits a 3-D cuboid from a cube node.
func encodeCuboid(n *csg.Node, out *xmltree.Node) error {
	siz, err := n.Value("size")
	if err != nil {
		return err
	}
	dx, dy, dz := siz.Float(), siz.Float(), siz.Float()
	if siz.Size() > 1 {
		if siz.Size() < 3 {
			return errf(n, "size must have 3 values, got %d", siz.Size())
		}
		dx = siz.Get(0).Float()
		dy = siz.Get(1).Float()
		dz = siz.Get(2).Float()
	}
	if dx <= 0 {
		return errf(n, "dx must be > 0, got %g", dx)
	}
	if dy <= 0 {
		return errf(n, "dy must be > 0, got %g", dy)
	}
	if dz <= 0 {
		return errf(n, "dz must be > 0, got %g", dz)
	}
	center, err := n.Scalar("center")
	if err != nil {
		return err
	}
	out.AddProperty("dx", dx)
	out.AddProperty("dy", dy)
	out.AddProperty("dz", dz)
	out.AddProperty("center", center)
	return nil
}

// encodeSphere emits a 3-D sphere.
func encodeSphere(n *csg.Node, out *xmltree.Node) error {
	r, err := n.Float("r")
	if err != nil {
		return err
	}
	if r <= 0 {
		return errf(n, "r must be > 0, got %g", r)
	}
	out.AddProperty("r", r)
	return nil
}

// encodeCone emits a 3-D cone from a cylinder node. Either radius may be
// zero (a pointed cone) but not both.
func encodeCone(n *csg.Node, out *xmltree.Node) error {
	h, err := n.Float("h")
	if err != nil {
		return err
	}
	r1, err := n.Float("r1")
	if err != nil {
		return err
	}
	r2, err := n.Float("r2")
	if err != nil {
		return err
	}
	if h <= 0 {
		return errf(n, "h must be > 0, got %g", h)
	}
	if r1 < 0 {
		return errf(n, "r1 must be >= 0, got %g", r1)
	}
	if r2 < 0 {
		return errf(n, "r2 must be >= 0, got %g", r2)
	}
	if r1+r2 <= 0 {
		return errf(n, "r1+r2 must be > 0")
	}
	center, err := n.Scalar("center")
	if err != nil {
		return err
	}
	out.AddProperty("h", h)
	out.AddProperty("r1", r1)
	out.AddProperty("r2", r2)
	out.AddProperty("center", center)
	return nil
}

// encodePolygon emits a 2-D polygon. Only a single outer path is
// expressible in the target schema; point order follows the path index
// list, defaulting to identity order when no path is given.
func encodePolygon(n *csg.Node, out *xmltree.Node) error {
	points, err := n.Value("points")
	if err != nil {
		return err
	}
	np := points.Size()
	path := make([]int, np)
	for i := range path {
		path[i] = i
	}

	if paths, ok := n.Lookup("paths"); ok && paths.IsVector() {
		if paths.Size() != 1 {
			return errf(n, "polygon with internal hole(s) is not supported")
		}
		outer := paths.Get(0)
		np = outer.Size()
		path = make([]int, np)
		for i := range path {
			path[i] = outer.Get(i).Int()
		}
	}

	vertices := out.AddChild("vertices")
	for i := 0; i < np; i++ {
		point := points.Get(path[i])
		if point == nil || point.Size() < 2 {
			return errf(n, "polygon path index %d does not name a 2-D point", path[i])
		}
		vertex := vertices.AddChild("vertex")
		vertex.AddProperty("x", point.Get(0).String())
		vertex.AddProperty("y", point.Get(1).String())
	}
	return nil
}

// encodeOffset emits a 2-D offset. The source expresses rounded offsets via
// 'r' and straight ones via 'delta'; the target takes a delta plus flags.
func encodeOffset(n *csg.Node, out *xmltree.Node) error {
	var delta float64
	var round string
	if r, ok := n.Lookup("r"); ok {
		delta = r.Float()
		round = "true"
	} else if d, ok := n.Lookup("delta"); ok {
		delta = d.Float()
		round = "false"
	} else {
		return errf(n, "offset requires parameter 'r' or 'delta'")
	}

	chamfer := "false"
	if ch, ok := n.Lookup("chamfer"); ok {
		chamfer = ch.String()
	}
	out.AddProperty("delta", delta)
	out.AddProperty("round", round)
	out.AddProperty("chamfer", chamfer)
	return nil
}

// encodePolyhedron emits a 3-D polyhedron. The source winding convention is
// opposite the target's, so face vertex order is reversed on output.
func encodePolyhedron(n *csg.Node, out *xmltree.Node) error {
	points, err := n.Value("points")
	if err != nil {
		return err
	}
	np := points.Size()
	if np < 4 {
		return errf(n, "polyhedron with too few points: %d, need at least 4", np)
	}
	vertices := out.AddChild("vertices")
	for i := 0; i < np; i++ {
		point := points.Get(i)
		if point == nil || point.Size() == 1 {
			return errf(n, "illegal polyhedron point value at position %d: %s", i, pointText(point))
		}
		if point.Size() < 3 {
			return errf(n, "polyhedron point %d must have 3 values, got %d", i, point.Size())
		}
		vertex := vertices.AddChild("vertex")
		vertex.AddProperty("x", point.Get(0).String())
		vertex.AddProperty("y", point.Get(1).String())
		vertex.AddProperty("z", point.Get(2).String())
	}

	faces, err := n.Value("faces")
	if err != nil {
		return err
	}
	xmlFaces := out.AddChild("faces")
	for i := 0; i < faces.Size(); i++ {
		face := faces.Get(i)
		nfv := face.Size()
		if nfv < 3 {
			return errf(n, "polyhedron face %d must have 3 or more vertices, got %d", i, nfv)
		}
		xmlFace := xmlFaces.AddChild("face")
		for j := 0; j < nfv; j++ {
			fv := xmlFace.AddChild("fv")
			fv.AddProperty("index", face.Get(nfv-j-1).String())
		}
	}
	return nil
}

// pointText renders a possibly-nil point for a diagnostic.
func pointText(v value.Value) string {
	if v == nil {
		return "<missing>"
	}
	return v.String()
}

// encodeProjection handles projection2d. In non-cut mode the node is a
// structural no-op and children pass straight through. In cut mode the
// children are wrapped in an intersection against a very thin, very wide
// slab to approximate a planar slice before projecting.
func encodeProjection(n *csg.Node, out *xmltree.Node) (*xmltree.Node, error) {
	cut, err := n.Value("cut")
	if err != nil {
		return nil, err
	}
	if !cut.Bool() {
		return out, nil
	}
	intersection := out.AddChild("intersection3d")
	slab := intersection.AddChild("cuboid")
	slab.AddProperty("dx", cutSlabExtent)
	slab.AddProperty("dy", cutSlabExtent)
	slab.AddProperty("dz", cutSlabThickness)
	slab.AddProperty("center", "true")
	// Children attach to the intersection, not the projection itself.
	return intersection, nil
}
