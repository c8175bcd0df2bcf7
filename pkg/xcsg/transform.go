package xcsg

import (
	"fmt"
	"math"

	"github.com/chazu/sapwood/pkg/csg"
	"github.com/chazu/sapwood/pkg/xmltree"
)

// assignMatrix reads a multmatrix node's positional 4×4 parameter and
// attaches it as the node's transform.
func assignMatrix(n *csg.Node) error {
	m, err := n.MatrixParam()
	if err != nil {
		return err
	}
	n.SetMatrix(m)
	return nil
}

// encodeRotateExtrude emits a 3-D rotate_extrude. The source's convention
// implies a -90° rotation about the local X axis after extrusion, so that
// corrective rotation is composed into the node's transform here: it
// pre-multiplies any explicit parameter matrix (which applies first in
// object space) and otherwise becomes the node's sole transform.
func encodeRotateExtrude(n *csg.Node, out *xmltree.Node) error {
	angle := 360.0
	if a, ok := n.Lookup("angle"); ok {
		angle = a.Float()
	}
	out.AddProperty("angle", angle*math.Pi/180)

	rotx := csg.RotateX(-math.Pi / 2)
	if n.HasMatrix() {
		n.SetMatrix(rotx.Mul(n.Matrix()))
	} else {
		n.SetMatrix(rotx)
	}
	return nil
}

// writeTransform emits a node's transform as an explicit tmatrix block:
// four trow children carrying the 16 entries row-major. The block is added
// before any encoded geometry children.
func writeTransform(out *xmltree.Node, m csg.Mat4) {
	tmatrix := out.AddChild("tmatrix")
	for i := 0; i < 4; i++ {
		trow := tmatrix.AddChild("trow")
		for j := 0; j < 4; j++ {
			trow.AddProperty(fmt.Sprintf("c%d", j), m[i][j])
		}
	}
}
