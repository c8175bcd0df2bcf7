// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/chazu/sapwood/pkg/csg"
	"github.com/chazu/sapwood/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells is the default marching cubes tessellation resolution.
const DefaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	// MeshCells controls marching cubes resolution for ToMesh.
	MeshCells int
}

// New returns a new SdfxKernel with the default mesh resolution.
func New() *SdfxKernel {
	return &SdfxKernel{MeshCells: DefaultMeshCells}
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// Cuboid creates a box with the given dimensions. sdf.Box3D centers the box
// at the origin; the source schema's center=false convention wants the
// minimum corner there instead, so we translate by half-dimensions.
func (k *SdfxKernel) Cuboid(dx, dy, dz float64, center bool) kernel.Solid {
	s, err := sdf.Box3D(v3.Vec{X: dx, Y: dy, Z: dz}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	if !center {
		m := sdf.Translate3d(v3.Vec{X: dx / 2, Y: dy / 2, Z: dz / 2})
		s = sdf.Transform3D(s, m)
	}
	return wrap(s)
}

// Sphere creates a sphere centered at the origin.
func (k *SdfxKernel) Sphere(r float64) kernel.Solid {
	s, err := sdf.Sphere3D(r)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Sphere3D: %v", err))
	}
	return wrap(s)
}

// Cone creates a truncated cone with base radius r1 and top radius r2.
// sdf.Cone3D centers the cone on the origin; center=false moves the base
// to the z=0 plane.
func (k *SdfxKernel) Cone(h, r1, r2 float64, center bool) kernel.Solid {
	var s sdf.SDF3
	var err error
	if r1 == r2 {
		// A degenerate cone is a cylinder; Cone3D rejects equal radii in
		// some sdfx versions, so use the dedicated primitive.
		s, err = sdf.Cylinder3D(h, r1, 0)
	} else {
		s, err = sdf.Cone3D(h, r1, r2, 0)
	}
	if err != nil {
		panic(fmt.Sprintf("sdfx cone: %v", err))
	}
	if !center {
		s = sdf.Transform3D(s, sdf.Translate3d(v3.Vec{Z: h / 2}))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *SdfxKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Difference3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Transform applies a 4×4 homogeneous transform to a solid. Singular
// matrices (which flatten the solid) yield an empty solid.
func (k *SdfxKernel) Transform(s kernel.Solid, m csg.Mat4) kernel.Solid {
	inv, ok := m.Inverse()
	if !ok {
		return wrap(emptySDF3{})
	}
	return wrap(&affineSDF3{s: unwrap(s), fwd: m, inv: inv})
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	cells := k.MeshCells
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(sdf3, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
