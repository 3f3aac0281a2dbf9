// Package math provides the point, vector and rotation types used by the 3D engine.
package math

import "math"

// Point3D is an immutable point (or direction) in 3D space.
type Point3D struct {
	X, Y, Z float64
}

// Reference points and rotation axes.
var (
	Origin = Point3D{0, 0, 0}
	UnitX  = Point3D{1, 0, 0}
	UnitY  = Point3D{0, 1, 0}
	UnitZ  = Point3D{0, 0, 1}
)

// Pt is shorthand for Point3D{x, y, z}.
func Pt(x, y, z float64) Point3D {
	return Point3D{x, y, z}
}

// Add returns p + other.
func (p Point3D) Add(other Point3D) Point3D {
	return Point3D{p.X + other.X, p.Y + other.Y, p.Z + other.Z}
}

// Sub returns p - other.
func (p Point3D) Sub(other Point3D) Point3D {
	return Point3D{p.X - other.X, p.Y - other.Y, p.Z - other.Z}
}

// Scale returns p * s.
func (p Point3D) Scale(s float64) Point3D {
	return Point3D{p.X * s, p.Y * s, p.Z * s}
}

// Neg returns -p.
func (p Point3D) Neg() Point3D {
	return Point3D{-p.X, -p.Y, -p.Z}
}

// Dot returns the dot product.
func (p Point3D) Dot(other Point3D) float64 {
	return p.X*other.X + p.Y*other.Y + p.Z*other.Z
}

// Cross returns the cross product.
func (p Point3D) Cross(other Point3D) Point3D {
	return Point3D{
		p.Y*other.Z - p.Z*other.Y,
		p.Z*other.X - p.X*other.Z,
		p.X*other.Y - p.Y*other.X,
	}
}

// Length returns the magnitude.
func (p Point3D) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Normalize returns a unit vector, or the zero vector if p has no length.
func (p Point3D) Normalize() Point3D {
	l := p.Length()
	if l == 0 {
		return Point3D{}
	}
	return Point3D{p.X / l, p.Y / l, p.Z / l}
}

// Distance returns the distance to another point.
func (p Point3D) Distance(other Point3D) float64 {
	return p.Sub(other).Length()
}

// Transform applies t to p. It lets callers pass a Rotate3D, a Mat4, or any
// other point transform where a Transformer is expected.
func (p Point3D) Transform(t Transformer) Point3D {
	return t.Apply(p)
}

// Transformer maps a point to a new point.
type Transformer interface {
	Apply(p Point3D) Point3D
}

// Lerp returns the point a fraction t of the way from p to other.
func (p Point3D) Lerp(other Point3D, t float64) Point3D {
	return Point3D{
		p.X + t*(other.X-p.X),
		p.Y + t*(other.Y-p.Y),
		p.Z + t*(other.Z-p.Z),
	}
}

// Min returns the component-wise minimum.
func (p Point3D) Min(other Point3D) Point3D {
	return Point3D{math.Min(p.X, other.X), math.Min(p.Y, other.Y), math.Min(p.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (p Point3D) Max(other Point3D) Point3D {
	return Point3D{math.Max(p.X, other.X), math.Max(p.Y, other.Y), math.Max(p.Z, other.Z)}
}
