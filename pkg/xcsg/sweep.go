package xcsg

import (
	"math"

	"github.com/chazu/sapwood/pkg/csg"
	"github.com/chazu/sapwood/pkg/xmltree"
)

// sweepSegmentsPerTurn sets the spline resolution for twisted sweeps: a
// full 360° twist is sampled with 36 segments.
const sweepSegmentsPerTurn = 36

// sweepSegments returns the number of piecewise-linear segments for a sweep
// with the given twist (radians). One segment suffices without twist;
// otherwise the count grows with the twist angle, and an explicit slices
// request can only raise it.
func sweepSegments(twist float64, slices int) int {
	nseg := 1
	if math.Abs(twist) > 0 {
		nseg = int(math.Ceil(sweepSegmentsPerTurn * math.Abs(twist) / (2 * math.Pi)))
	}
	if slices > nseg {
		nseg = slices
	}
	return nseg
}

// encodeSweep emits a linear extrusion as a sweep along a spline path.
// Each control point carries a position and a tangent; the tangent is the
// base tangent (0,1,0) rotated by the interpolated twist angle and scaled
// by the interpolated cross-section scale factor.
func encodeSweep(n *csg.Node, out *xmltree.Node) error {
	dz, err := n.Float("height")
	if err != nil {
		return err
	}
	if dz <= 0 {
		return errf(n, "height must be > 0, got %g", dz)
	}

	// Twist sign is flipped: the source twists clockwise for positive
	// angles, the target counterclockwise.
	twist := 0.0
	if tw, ok := n.Lookup("twist"); ok {
		twist = -tw.Float() * math.Pi / 180
	}
	center := false
	if c, ok := n.Lookup("center"); ok {
		center = c.Bool()
	}
	slices := -1
	if s, ok := n.Lookup("slices"); ok {
		slices = s.Int()
	}

	// Top cross-section scale relative to the base, per axis.
	scx, scy := 1.0, 1.0
	if sc, ok := n.Lookup("scale"); ok {
		if sc.IsVector() {
			if sc.Size() < 2 {
				return errf(n, "scale must have 2 values, got %d", sc.Size())
			}
			scx = sc.Get(0).Float()
			scy = sc.Get(1).Float()
		} else {
			scx = sc.Float()
			scy = scx
		}
	}

	// Base control point and base tangent.
	x, y, z := 0.0, 0.0, 0.0
	vx0, vy0, vz0 := 0.0, 1.0, 0.0
	if center {
		z = -dz / 2
	}

	nseg := sweepSegments(twist, slices)
	dz /= float64(nseg)
	da := twist / float64(nseg)
	dscx := (scx - 1.0) / float64(nseg)
	dscy := (scy - 1.0) / float64(nseg)
	scx, scy = 1.0, 1.0

	path := out.AddChild("spline_path")

	p0 := path.AddChild("cpoint")
	p0.AddProperty("x", x)
	p0.AddProperty("y", y)
	p0.AddProperty("z", z)
	p0.AddProperty("vx", vx0)
	p0.AddProperty("vy", vy0)
	p0.AddProperty("vz", vz0)

	angle := 0.0
	for seg := 0; seg < nseg; seg++ {
		z += dz
		angle += da
		scx += dscx
		scy += dscy
		sa, ca := math.Sin(angle), math.Cos(angle)
		vx := ca*vx0 - sa*vy0
		vy := sa*vx0 + ca*vy0

		p := path.AddChild("cpoint")
		p.AddProperty("x", x)
		p.AddProperty("y", y)
		p.AddProperty("z", z)
		p.AddProperty("vx", vx*scx)
		p.AddProperty("vy", vy*scy)
		p.AddProperty("vz", vz0)
	}
	return nil
}
