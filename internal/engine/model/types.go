// Package model holds the scene data model: faces, meshes (Object3D) and the
// World that flattens them into one addressable vertex buffer.
package model

import (
	"errors"
	gomath "math"

	"github.com/Faultbox/chart3d/pkg/math"
)

var (
	ErrTooFewVertices        = errors.New("face needs at least 3 vertices")
	ErrVertexIndexOutOfRange = errors.New("face vertex index out of range")
	ErrObjectAlreadyAdded    = errors.New("object already added to world")
	ErrMissingDepthFunc      = errors.New("custom depth rule has no function")
)

// Bounds is an axis-aligned bounding box in world space.
type Bounds struct {
	Min math.Point3D
	Max math.Point3D
}

// EmptyBounds returns a box that contains nothing; extending it with a
// point yields a box around that point.
func EmptyBounds() Bounds {
	inf := gomath.Inf(1)
	return Bounds{
		Min: math.Pt(inf, inf, inf),
		Max: math.Pt(-inf, -inf, -inf),
	}
}

// IsEmpty reports whether no point has been added to b.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend returns b grown to include p.
func (b Bounds) Extend(p math.Point3D) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest box containing b and other.
func (b Bounds) Union(other Bounds) Bounds {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Point3D {
	return b.Min.Lerp(b.Max, 0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() math.Point3D {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners of the box.
func (b Bounds) Corners() [8]math.Point3D {
	lo, hi := b.Min, b.Max
	return [8]math.Point3D{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}
