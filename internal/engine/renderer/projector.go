package renderer

import (
	"github.com/Faultbox/chart3d/internal/engine/camera"
	"github.com/Faultbox/chart3d/pkg/math"
)

// Projection holds the constants that turn camera-space points into canvas
// coordinates.
type Projection struct {
	// FocalLength scales camera-space x and y by FocalLength/z.
	FocalLength float64
	// Orthographic drops the perspective divide and scales by
	// FocalLength/distance instead, so zooming still changes the size.
	Orthographic bool
	// NearPlane is the smallest camera-space z that is drawn.
	NearPlane float64
}

// DefaultProjection returns the projection used when none is configured.
func DefaultProjection() Projection {
	return Projection{
		FocalLength: 1500,
		NearPlane:   0.01,
	}
}

// Projector maps world points to canvas coordinates for one camera and
// canvas size. Axis and label layout use it to place 2D decorations next to
// 3D anchors.
type Projector struct {
	view   math.Mat4
	proj   Projection
	cx, cy float64
	ortho  float64
}

// NewProjector builds a projector for vp on a width x height canvas whose
// center is the projection of the camera target.
func NewProjector(vp *camera.ViewPoint3D, proj Projection, width, height float64) *Projector {
	return &Projector{
		view:  vp.ViewMatrix(),
		proj:  proj,
		cx:    width / 2,
		cy:    height / 2,
		ortho: proj.FocalLength / vp.Distance(),
	}
}

// ToCamera returns p in camera space: the camera at the origin looking along
// +Z, +X to the right and +Y up.
func (pr *Projector) ToCamera(p math.Point3D) math.Point3D {
	return pr.view.Apply(p)
}

// InFront reports whether a camera-space point lies beyond the near plane.
func (pr *Projector) InFront(c math.Point3D) bool {
	return c.Z > pr.proj.NearPlane
}

// ProjectCamera maps a camera-space point onto the canvas. ok is false for
// points on or behind the near plane.
func (pr *Projector) ProjectCamera(c math.Point3D) (p math.Vec2, ok bool) {
	if !pr.InFront(c) {
		return math.Vec2{}, false
	}
	return pr.project(c), true
}

// Project maps a world point onto the canvas. ok is false for points on or
// behind the near plane.
func (pr *Projector) Project(p math.Point3D) (math.Vec2, bool) {
	return pr.ProjectCamera(pr.ToCamera(p))
}

// Scale returns the canvas units per world unit at camera-space depth z.
func (pr *Projector) Scale(z float64) float64 {
	if pr.proj.Orthographic {
		return pr.ortho
	}
	return pr.proj.FocalLength / z
}

func (pr *Projector) project(c math.Point3D) math.Vec2 {
	k := pr.Scale(c.Z)
	return math.Vec2{
		X: pr.cx + c.X*k,
		Y: pr.cy - c.Y*k,
	}
}

// clipNear clips a camera-space polygon to the half-space z > near and
// appends the result to dst.
func clipNear(pts []math.Point3D, near float64, dst []math.Point3D) []math.Point3D {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		aIn, bIn := a.Z > near, b.Z > near
		if aIn {
			dst = append(dst, a)
		}
		if aIn != bIn {
			t := (near - a.Z) / (b.Z - a.Z)
			cut := a.Lerp(b, t)
			cut.Z = near
			dst = append(dst, cut)
		}
	}
	return dst
}
