package worldview

// Matrix3 is a row-major 3x3 matrix acting on column vectors:
//
//	| m[0] m[1] m[2] |   | x |
//	| m[3] m[4] m[5] | * | y |
//	| m[6] m[7] m[8] |   | 1 |
type Matrix3 [9]float64

// Identity3 returns the identity matrix.
func Identity3() Matrix3 {
	return Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Scale3 returns a uniform scale matrix.
func Scale3(s float64) Matrix3 {
	return Matrix3{s, 0, 0, 0, s, 0, 0, 0, 1}
}

// Translate3 returns a translation matrix.
func Translate3(x, y float64) Matrix3 {
	return Matrix3{1, 0, x, 0, 1, y, 0, 0, 1}
}

// Mul3 stores a*b in dst. dst may alias a or b.
func Mul3(dst *Matrix3, a, b Matrix3) {
	*dst = Matrix3{
		a[0]*b[0] + a[1]*b[3] + a[2]*b[6],
		a[0]*b[1] + a[1]*b[4] + a[2]*b[7],
		a[0]*b[2] + a[1]*b[5] + a[2]*b[8],

		a[3]*b[0] + a[4]*b[3] + a[5]*b[6],
		a[3]*b[1] + a[4]*b[4] + a[5]*b[7],
		a[3]*b[2] + a[4]*b[5] + a[5]*b[8],

		a[6]*b[0] + a[7]*b[3] + a[8]*b[6],
		a[6]*b[1] + a[7]*b[4] + a[8]*b[7],
		a[6]*b[2] + a[7]*b[5] + a[8]*b[8],
	}
}

// Inverse3 returns the inverse of m, or the identity matrix if m is singular
// (determinant ≈ 0).
func Inverse3(m Matrix3) Matrix3 {
	c00 := m[4]*m[8] - m[5]*m[7]
	c01 := m[5]*m[6] - m[3]*m[8]
	c02 := m[3]*m[7] - m[4]*m[6]
	det := m[0]*c00 + m[1]*c01 + m[2]*c02
	if det > -1e-12 && det < 1e-12 {
		return Identity3()
	}
	inv := 1 / det
	return Matrix3{
		c00 * inv,
		(m[2]*m[7] - m[1]*m[8]) * inv,
		(m[1]*m[5] - m[2]*m[4]) * inv,
		c01 * inv,
		(m[0]*m[8] - m[2]*m[6]) * inv,
		(m[2]*m[3] - m[0]*m[5]) * inv,
		c02 * inv,
		(m[1]*m[6] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[1]*m[3]) * inv,
	}
}

// Transform2D applies m to the point (x, y).
func (m Matrix3) Transform2D(x, y float64) (float64, float64) {
	w := m[6]*x + m[7]*y + m[8]
	if w == 0 {
		w = 1
	}
	return (m[0]*x + m[1]*y + m[2]) / w, (m[3]*x + m[4]*y + m[5]) / w
}

// TransformScratch is caller-owned working storage for transform composition,
// letting hot paths compose matrices without allocating.
type TransformScratch struct {
	node  Matrix3
	local Matrix3
}
