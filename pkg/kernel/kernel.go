// Package kernel defines the abstract geometry kernel interface used to
// evaluate a source tree into real geometry. Implementations (sdfx)
// provide primitives and boolean operations behind this interface, so the
// evaluator does not depend on any particular mesh library.
package kernel

import "github.com/chazu/sapwood/pkg/csg"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Dimensions follow the source schema's conventions:
	// center=false puts a cuboid's corner at the origin and a cone's base
	// in the z=0 plane; center=true centers the solid on the origin.
	Cuboid(dx, dy, dz float64, center bool) Solid
	Sphere(r float64) Solid
	Cone(h, r1, r2 float64, center bool) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transform applies a 4×4 homogeneous transform to a solid.
	Transform(s Solid, m csg.Mat4) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
