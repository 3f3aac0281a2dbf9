package math

import "math"

// Mat4 is a 4x4 affine transform in column-major order.
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
type Mat4 [16]float64

// Translate returns a translation matrix.
func Translate(d Point3D) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		d.X, d.Y, d.Z, 1,
	}
}

// RotateAxis returns a rotation matrix around an arbitrary axis through the
// origin. axis must be a unit vector, angle is in radians.
func RotateAxis(axis Point3D, angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat4{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y, 0,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x, 0,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c, 0,
		0, 0, 0, 1,
	}
}

// Basis returns the matrix that expresses world points in the frame whose
// origin is eye and whose axes are the orthonormal vectors right, up and
// forward (mapped to X, Y and Z respectively).
func Basis(eye, right, up, forward Point3D) Mat4 {
	return Mat4{
		right.X, up.X, forward.X, 0,
		right.Y, up.Y, forward.Y, 0,
		right.Z, up.Z, forward.Z, 0,
		-right.Dot(eye), -up.Dot(eye), -forward.Dot(eye), 1,
	}
}

// Mul multiplies this matrix by another (m * other). The result applies
// other first, then m.
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			result[col*4+row] =
				m[0*4+row]*other[col*4+0] +
					m[1*4+row]*other[col*4+1] +
					m[2*4+row]*other[col*4+2] +
					m[3*4+row]*other[col*4+3]
		}
	}
	return result
}

// Apply transforms a point by this matrix (assumes w=1).
func (m Mat4) Apply(p Point3D) Point3D {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Point3D{x / w, y / w, z / w}
	}
	return Point3D{x, y, z}
}
