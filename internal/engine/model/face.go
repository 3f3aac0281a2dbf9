package model

import (
	"fmt"
	"image/color"
	gomath "math"

	"github.com/Faultbox/chart3d/pkg/math"
)

// DepthKind selects how a face reports its sort depth.
type DepthKind uint8

const (
	// DepthMean uses the mean camera-space z of the face's vertices.
	DepthMean DepthKind = iota
	// DepthFixed always reports DepthRule.Value.
	DepthFixed
	// DepthCustom calls DepthRule.Func.
	DepthCustom
)

// DepthFunc computes a sort depth from a face's vertices in camera space,
// given in winding order. Larger values are farther from the viewer.
type DepthFunc func(cam []math.Point3D) float64

// DepthRule decides where a face lands in paint order.
type DepthRule struct {
	Kind  DepthKind
	Value float64
	Func  DepthFunc
}

// DefaultDepth sorts a face by the mean depth of its vertices.
func DefaultDepth() DepthRule {
	return DepthRule{Kind: DepthMean}
}

// FixedDepth pins a face at depth v regardless of where its vertices are.
func FixedDepth(v float64) DepthRule {
	return DepthRule{Kind: DepthFixed, Value: v}
}

// CustomDepth sorts a face by the value fn returns. fn must not be nil.
func CustomDepth(fn DepthFunc) DepthRule {
	return DepthRule{Kind: DepthCustom, Func: fn}
}

// AlwaysBehind is painted before every face with a finite depth.
func AlwaysBehind() DepthRule {
	return FixedDepth(gomath.Inf(1))
}

// AlwaysInFront is painted after every face with a finite depth.
func AlwaysInFront() DepthRule {
	return FixedDepth(gomath.Inf(-1))
}

// Depth evaluates the rule for a face whose camera-space vertices are cam.
// A DepthCustom rule without a Func returns ErrMissingDepthFunc.
func (r DepthRule) Depth(cam []math.Point3D) (float64, error) {
	switch r.Kind {
	case DepthFixed:
		return r.Value, nil
	case DepthCustom:
		if r.Func == nil {
			return 0, ErrMissingDepthFunc
		}
		return r.Func(cam), nil
	}
	return meanZ(cam), nil
}

func meanZ(pts []math.Point3D) float64 {
	if len(pts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range pts {
		sum += p.Z
	}
	return sum / float64(len(pts))
}

// Face is a flat polygon referencing its owner's vertices by local index.
//
// Vertices are wound counter-clockwise when seen from the front, so the
// right-hand normal points outward. Faces are assumed to be simple polygons;
// this is not checked.
type Face struct {
	indices []int

	// Color is the flat fill color.
	Color color.RGBA
	// Tag is an opaque owner value echoed into hit-test results.
	Tag any
	// Outline requests an outline stroke around the filled polygon.
	Outline bool
	// DoubleSided faces are painted even when their back faces the viewer.
	DoubleSided bool
	// Depth overrides the default mean-depth sort rule.
	Depth DepthRule

	offset int
}

// NewFace creates a face over the given local vertex indices.
func NewFace(indices []int, c color.Color, tag any) (*Face, error) {
	if len(indices) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(indices))
	}
	for _, idx := range indices {
		if idx < 0 {
			return nil, fmt.Errorf("%w: negative index %d", ErrVertexIndexOutOfRange, idx)
		}
	}
	f := &Face{
		indices: append([]int(nil), indices...),
		Tag:     tag,
		Depth:   DefaultDepth(),
	}
	if c != nil {
		f.Color = color.RGBAModel.Convert(c).(color.RGBA)
	}
	return f, nil
}

// VertexCount returns the number of vertices in the face.
func (f *Face) VertexCount() int {
	return len(f.indices)
}

// VertexIndex returns the i-th local vertex index.
func (f *Face) VertexIndex(i int) int {
	return f.indices[i]
}

// Indices returns a copy of the local vertex indices in winding order.
func (f *Face) Indices() []int {
	return append([]int(nil), f.indices...)
}

// Offset is the position of the owning object's first vertex in the world
// vertex buffer. It is set on the copies returned by World.Faces and is zero
// on a face obtained from its object.
func (f *Face) Offset() int {
	return f.offset
}

// GlobalIndex returns the world-buffer index of the i-th vertex.
func (f *Face) GlobalIndex(i int) int {
	return f.offset + f.indices[i]
}

// Resolve appends the face's vertices, looked up in the world buffer, to dst.
func (f *Face) Resolve(buf []math.Point3D, dst []math.Point3D) ([]math.Point3D, error) {
	for i := range f.indices {
		g := f.GlobalIndex(i)
		if g < 0 || g >= len(buf) {
			return dst, fmt.Errorf("%w: index %d (offset %d) in buffer of %d",
				ErrVertexIndexOutOfRange, g, f.offset, len(buf))
		}
		dst = append(dst, buf[g])
	}
	return dst, nil
}

// Normal returns the unit normal of the polygon pts using Newell's method,
// which tolerates slightly non-planar and concave polygons.
func Normal(pts []math.Point3D) math.Point3D {
	var n math.Point3D
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalize()
}

// Centroid returns the mean of pts.
func Centroid(pts []math.Point3D) math.Point3D {
	var c math.Point3D
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(pts)))
}
