// Package picking maps screen positions back to the scene elements drawn
// there.
package picking

import (
	gomath "math"

	"github.com/Faultbox/chart3d/pkg/math"
)

// Rect is an axis-aligned rectangle in screen space.
type Rect struct {
	Min math.Vec2
	Max math.Vec2
}

// NewRect creates a Rect from two corners in any order.
func NewRect(x0, y0, x1, y1 float64) Rect {
	r := Rect{Min: math.Vec2{X: x0, Y: y0}, Max: math.Vec2{X: x1, Y: y1}}
	// Ensure min < max for each axis
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// BoundsOf returns the smallest Rect containing pts. ok is false when pts is
// empty.
func BoundsOf(pts []math.Vec2) (r Rect, ok bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r = Rect{
		Min: math.Vec2{X: gomath.Inf(1), Y: gomath.Inf(1)},
		Max: math.Vec2{X: gomath.Inf(-1), Y: gomath.Inf(-1)},
	}
	for _, p := range pts {
		r.Min.X = gomath.Min(r.Min.X, p.X)
		r.Min.Y = gomath.Min(r.Min.Y, p.Y)
		r.Max.X = gomath.Max(r.Max.X, p.X)
		r.Max.Y = gomath.Max(r.Max.Y, p.Y)
	}
	return r, true
}

// Contains reports whether (x, y) lies inside or on the edge of r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Min.X && x <= r.Max.X && y >= r.Min.Y && y <= r.Max.Y
}

// Union returns the smallest Rect containing r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: math.Vec2{X: gomath.Min(r.Min.X, other.Min.X), Y: gomath.Min(r.Min.Y, other.Min.Y)},
		Max: math.Vec2{X: gomath.Max(r.Max.X, other.Max.X), Y: gomath.Max(r.Max.Y, other.Max.Y)},
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint.
func (r Rect) Center() math.Vec2 {
	return math.Vec2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Polygon returns the rectangle's corners, clockwise on screen.
func (r Rect) Polygon() []math.Vec2 {
	return []math.Vec2{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// PolygonContains reports whether (x, y) lies inside the simple polygon pts,
// using the even-odd crossing rule.
func PolygonContains(pts []math.Vec2, x, y float64) bool {
	n := len(pts)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > y) != (b.Y > y) {
			xCross := (b.X-a.X)*(y-a.Y)/(b.Y-a.Y) + a.X
			if x < xCross {
				inside = !inside
			}
		}
	}
	return inside
}
