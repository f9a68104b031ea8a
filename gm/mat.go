package gm

import "math"

// Mat is a 2x2 matrix in row major order:
//
//	| A B |
//	| C D |
type Mat struct {
	A, B float64
	C, D float64
}

func IdentityMat() Mat {
	return Mat{A: 1, D: 1}
}

func ScaleMat(scale Vec) Mat {
	return Mat{A: scale.X, D: scale.Y}
}

// RotationMat rotates a vector by the given angle. With the y axis pointing
// down, positive angles rotate clockwise on screen.
func RotationMat(angle Rad) Mat {
	sin, cos := math.Sincos(float64(angle))
	return Mat{
		A: cos, B: -sin,
		C: sin, D: cos,
	}
}

func (m Mat) Transform(v Vec) Vec {
	return Vec{
		X: m.A*v.X + m.B*v.Y,
		Y: m.C*v.X + m.D*v.Y,
	}
}

func (m Mat) Mul(n Mat) Mat {
	return Mat{
		A: m.A*n.A + m.B*n.C,
		B: m.A*n.B + m.B*n.D,
		C: m.C*n.A + m.D*n.C,
		D: m.C*n.B + m.D*n.D,
	}
}

func (m Mat) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// TryInverse returns the inverse matrix. It returns false if the matrix is singular.
func (m Mat) TryInverse() (Mat, bool) {
	det := m.Determinant()
	if det == 0 {
		return Mat{}, false
	}

	f := 1 / det
	return Mat{
		A: f * m.D, B: -f * m.B,
		C: -f * m.C, D: f * m.A,
	}, true
}
