package math

import (
	"errors"
	"math"
)

// ErrDegenerateAxis is returned when a rotation axis has zero length.
var ErrDegenerateAxis = errors.New("rotation axis has zero length")

// Rotate3D rotates points by Angle radians about an axis through a pivot.
//
// Pivot and axis are fixed at construction. Angle may be changed freely, so a
// single Rotate3D can be reused to sweep points around a ring.
type Rotate3D struct {
	pivot Point3D
	axis  Point3D // unit length
	Angle float64
}

// NewRotate3D creates a rotation of angle radians about axis through pivot.
// The axis need not be normalized but must not be the zero vector.
func NewRotate3D(pivot, axis Point3D, angle float64) (*Rotate3D, error) {
	l := axis.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return nil, ErrDegenerateAxis
	}
	return &Rotate3D{
		pivot: pivot,
		axis:  axis.Scale(1 / l),
		Angle: angle,
	}, nil
}

// Pivot returns the point the rotation axis passes through.
func (r *Rotate3D) Pivot() Point3D {
	return r.pivot
}

// Axis returns the unit rotation axis.
func (r *Rotate3D) Axis() Point3D {
	return r.axis
}

// Apply rotates p using Rodrigues' formula:
//
//	p' = p·cosθ + (u×p)·sinθ + u·(u·p)·(1−cosθ)
//
// evaluated relative to the pivot.
func (r *Rotate3D) Apply(p Point3D) Point3D {
	c, s := math.Cos(r.Angle), math.Sin(r.Angle)
	v := p.Sub(r.pivot)
	u := r.axis

	rotated := v.Scale(c).
		Add(u.Cross(v).Scale(s)).
		Add(u.Scale(u.Dot(v) * (1 - c)))
	return rotated.Add(r.pivot)
}

// Matrix returns the rotation as an affine matrix.
func (r *Rotate3D) Matrix() Mat4 {
	return Translate(r.pivot).
		Mul(RotateAxis(r.axis, r.Angle)).
		Mul(Translate(r.pivot.Neg()))
}
