package sdfx

import (
	"math"

	"github.com/chazu/sapwood/pkg/csg"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// affineSDF3 applies an arbitrary 4×4 affine transform to an SDF by
// evaluating the wrapped field at the inverse-transformed point. Under
// shear or non-uniform scale the result is no longer a true distance field,
// but its zero level set is exact, which is all marching cubes needs.
type affineSDF3 struct {
	s   sdf.SDF3
	fwd csg.Mat4 // object space -> world space
	inv csg.Mat4 // world space -> object space
}

// Evaluate returns the field value at a world-space point.
func (a *affineSDF3) Evaluate(p v3.Vec) float64 {
	x, y, z := a.inv.TransformPoint(p.X, p.Y, p.Z)
	return a.s.Evaluate(v3.Vec{X: x, Y: y, Z: z})
}

// BoundingBox transforms the wrapped solid's eight box corners and takes
// their axis-aligned extent.
func (a *affineSDF3) BoundingBox() sdf.Box3 {
	bb := a.s.BoundingBox()
	lo := v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := v3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}

	for i := 0; i < 8; i++ {
		c := v3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: bb.Min.Z}
		if i&1 != 0 {
			c.X = bb.Max.X
		}
		if i&2 != 0 {
			c.Y = bb.Max.Y
		}
		if i&4 != 0 {
			c.Z = bb.Max.Z
		}
		x, y, z := a.fwd.TransformPoint(c.X, c.Y, c.Z)
		lo.X = math.Min(lo.X, x)
		lo.Y = math.Min(lo.Y, y)
		lo.Z = math.Min(lo.Z, z)
		hi.X = math.Max(hi.X, x)
		hi.Y = math.Max(hi.Y, y)
		hi.Z = math.Max(hi.Z, z)
	}
	return sdf.Box3{Min: lo, Max: hi}
}

// emptySDF3 is a solid with no interior, used when a transform is singular.
type emptySDF3 struct{}

func (emptySDF3) Evaluate(p v3.Vec) float64 { return math.Inf(1) }

func (emptySDF3) BoundingBox() sdf.Box3 {
	return sdf.Box3{}
}
