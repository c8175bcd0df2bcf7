package csg

import "math"

// Mat4 is a 4×4 homogeneous transform, row-major. The zero value is the
// zero matrix; use Identity for the no-op transform.
type Mat4 [4][4]float64

// Identity returns the identity transform.
func Identity() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// Mul returns the matrix product a*b. When composing transforms the
// right-hand operand applies first in object space.
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// RotateX returns a rotation of angle radians about the X axis.
func RotateX(angle float64) Mat4 {
	s, c := math.Sin(angle), math.Cos(angle)
	m := Identity()
	m[1][1] = c
	m[1][2] = -s
	m[2][1] = s
	m[2][2] = c
	return m
}

// TransformPoint applies the transform to the point (x, y, z, 1).
func (a Mat4) TransformPoint(x, y, z float64) (float64, float64, float64) {
	return a[0][0]*x + a[0][1]*y + a[0][2]*z + a[0][3],
		a[1][0]*x + a[1][1]*y + a[1][2]*z + a[1][3],
		a[2][0]*x + a[2][1]*y + a[2][2]*z + a[2][3]
}

// MatrixParam reads the node's positional parameter as a row-major 4×4
// matrix, as supplied by multmatrix. Anything other than exactly 4 rows of
// 4 values is a hard failure.
func (n *Node) MatrixParam() (Mat4, error) {
	var out Mat4
	m, ok := n.Lookup(ParamName(0))
	if !ok {
		return out, nodeErrorf(n, "missing positional matrix parameter")
	}
	if m.Size() != 4 {
		return out, nodeErrorf(n, "matrix must have 4 rows, got %d", m.Size())
	}
	for i := 0; i < 4; i++ {
		row := m.Get(i)
		if row == nil || !row.IsVector() || row.Size() != 4 {
			cols := 0
			if row != nil {
				cols = row.Size()
			}
			return out, nodeErrorf(n, "matrix row %d must have 4 columns, got %d", i, cols)
		}
		for j := 0; j < 4; j++ {
			out[i][j] = row.Get(j).Float()
		}
	}
	return out, nil
}

// Inverse returns the inverse transform via Gauss-Jordan elimination with
// partial pivoting. ok is false for singular matrices.
func (a Mat4) Inverse() (inv Mat4, ok bool) {
	m := a
	inv = Identity()

	for col := 0; col < 4; col++ {
		// Find the pivot row.
		pivot := col
		for r := col + 1; r < 4; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return Identity(), false
		}
		m[col], m[pivot] = m[pivot], m[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		// Normalize the pivot row.
		p := m[col][col]
		for j := 0; j < 4; j++ {
			m[col][j] /= p
			inv[col][j] /= p
		}

		// Eliminate the column from all other rows.
		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			f := m[r][col]
			if f == 0 {
				continue
			}
			for j := 0; j < 4; j++ {
				m[r][j] -= f * m[col][j]
				inv[r][j] -= f * inv[col][j]
			}
		}
	}
	return inv, true
}
