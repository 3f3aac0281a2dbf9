package model

import (
	"image/color"

	"github.com/Faultbox/chart3d/pkg/math"
)

// boxFaces lists the six faces of a box over the vertex order used by
// CreateBox, each wound counter-clockwise from outside.
var boxFaces = [6][4]int{
	{4, 5, 6, 7}, // +z
	{0, 3, 2, 1}, // -z
	{1, 2, 6, 5}, // +x
	{0, 4, 7, 3}, // -x
	{3, 7, 6, 2}, // +y
	{0, 1, 5, 4}, // -y
}

// CreateBox builds an axis-aligned box centered at c with the given
// dimensions. Every face is tagged with tag.
func CreateBox(c math.Point3D, xdim, ydim, zdim float64, col color.Color, tag any) *Object3D {
	hx, hy, hz := xdim/2, ydim/2, zdim/2
	o := NewObject3D()
	o.AddVertices(
		math.Pt(c.X-hx, c.Y-hy, c.Z-hz),
		math.Pt(c.X+hx, c.Y-hy, c.Z-hz),
		math.Pt(c.X+hx, c.Y+hy, c.Z-hz),
		math.Pt(c.X-hx, c.Y+hy, c.Z-hz),
		math.Pt(c.X-hx, c.Y-hy, c.Z+hz),
		math.Pt(c.X+hx, c.Y-hy, c.Z+hz),
		math.Pt(c.X+hx, c.Y+hy, c.Z+hz),
		math.Pt(c.X-hx, c.Y+hy, c.Z+hz),
	)
	for _, idx := range boxFaces {
		o.mustFace(idx[:], col, tag)
	}
	return o
}

// CreateTetrahedron builds a regular tetrahedron centered at c whose
// vertices lie at distance size from the center.
func CreateTetrahedron(c math.Point3D, size float64, col color.Color, tag any) *Object3D {
	s := size / 1.7320508075688772 // sqrt(3)
	o := NewObject3D()
	o.AddVertices(
		c.Add(math.Pt(s, s, s)),
		c.Add(math.Pt(s, -s, -s)),
		c.Add(math.Pt(-s, s, -s)),
		c.Add(math.Pt(-s, -s, s)),
	)
	for _, tri := range [4][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}} {
		o.mustFace(orientOutward(o.vertices, c, tri[:]), col, tag)
	}
	return o
}

// CreateYSheet builds a double-sided horizontal square of the given size
// centered at c.
func CreateYSheet(c math.Point3D, size float64, col color.Color, tag any) *Object3D {
	h := size / 2
	o := NewObject3D()
	o.AddVertices(
		math.Pt(c.X-h, c.Y, c.Z-h),
		math.Pt(c.X-h, c.Y, c.Z+h),
		math.Pt(c.X+h, c.Y, c.Z+h),
		math.Pt(c.X+h, c.Y, c.Z-h),
	)
	o.mustFace([]int{0, 1, 2, 3}, col, tag).DoubleSided = true
	return o
}

// CreateZSheet builds a double-sided square of the given size centered at c,
// lying in the plane z = c.Z.
func CreateZSheet(c math.Point3D, size float64, col color.Color, tag any) *Object3D {
	h := size / 2
	o := NewObject3D()
	o.AddVertices(
		math.Pt(c.X-h, c.Y-h, c.Z),
		math.Pt(c.X+h, c.Y-h, c.Z),
		math.Pt(c.X+h, c.Y+h, c.Z),
		math.Pt(c.X-h, c.Y+h, c.Z),
	)
	o.mustFace([]int{0, 1, 2, 3}, col, tag).DoubleSided = true
	return o
}

// mustFace is used by the builders above, whose index lists are fixed and
// always valid.
func (o *Object3D) mustFace(indices []int, col color.Color, tag any) *Face {
	f, err := o.NewFace(indices, col, tag)
	if err != nil {
		panic(err)
	}
	return f
}

// orientOutward returns indices reordered, if needed, so the polygon's
// normal points away from center.
func orientOutward(verts []math.Point3D, center math.Point3D, indices []int) []int {
	pts := make([]math.Point3D, len(indices))
	for i, idx := range indices {
		pts[i] = verts[idx]
	}
	if Normal(pts).Dot(Centroid(pts).Sub(center)) >= 0 {
		return indices
	}
	out := make([]int, len(indices))
	for i, idx := range indices {
		out[len(indices)-1-i] = idx
	}
	return out
}
