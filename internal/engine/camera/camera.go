// Package camera provides the orbiting viewpoint used to render a scene.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/chart3d/pkg/math"
)

const (
	// PoleMargin keeps the elevation this far inside ±π/2 so the camera's
	// up direction stays defined.
	PoleMargin = 1e-3
	// DefaultMinDistance is the smallest distance Zoom will shrink to.
	DefaultMinDistance = 1e-6
)

var (
	ErrInvalidDistance   = errors.New("camera distance must be positive and finite")
	ErrInvalidZoomFactor = errors.New("zoom factor must be positive and finite")
)

// ViewPoint3D is a camera orbiting a target point, described in spherical
// coordinates: azimuth around the Y axis, elevation above the XZ plane and
// distance from the target. Roll turns the camera about its line of sight.
//
// At zero azimuth and elevation the camera sits on the +Z side of the target
// looking toward -Z, with +X to the right and +Y up.
type ViewPoint3D struct {
	// Target is the point the camera orbits and looks at.
	Target math.Point3D

	azimuth   float64
	elevation float64
	distance  float64
	roll      float64

	// MinDistance is the floor applied by Zoom.
	MinDistance float64

	// Sensitivity for host input mapping (Drag and HandleZoom).
	DragSensitivity float64
	ZoomSensitivity float64
}

// New creates a viewpoint. distance must be positive; elevation is clamped
// away from the poles.
func New(target math.Point3D, azimuth, elevation, distance float64) (*ViewPoint3D, error) {
	if !validDistance(distance) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDistance, distance)
	}
	return &ViewPoint3D{
		Target:          target,
		azimuth:         azimuth,
		elevation:       clampElevation(elevation),
		distance:        distance,
		MinDistance:     DefaultMinDistance,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}, nil
}

// Default returns a viewpoint looking at the origin from slightly above and
// to the right.
func Default() *ViewPoint3D {
	vp, _ := New(math.Origin, -0.6, 0.45, 20)
	return vp
}

// Azimuth returns the horizontal angle in radians.
func (c *ViewPoint3D) Azimuth() float64 { return c.azimuth }

// Elevation returns the vertical angle in radians.
func (c *ViewPoint3D) Elevation() float64 { return c.elevation }

// Distance returns the distance from the target.
func (c *ViewPoint3D) Distance() float64 { return c.distance }

// RollAngle returns the roll about the line of sight in radians.
func (c *ViewPoint3D) RollAngle() float64 { return c.roll }

// PanLeftRight orbits the camera horizontally by delta radians.
func (c *ViewPoint3D) PanLeftRight(delta float64) {
	c.azimuth += delta
}

// MoveUpDown orbits the camera vertically by delta radians, stopping short of
// the poles.
func (c *ViewPoint3D) MoveUpDown(delta float64) {
	c.elevation = clampElevation(c.elevation + delta)
}

// Roll turns the camera about its line of sight by delta radians.
func (c *ViewPoint3D) Roll(delta float64) {
	c.roll += delta
}

// Zoom multiplies the distance by factor. The result never drops below
// MinDistance.
func (c *ViewPoint3D) Zoom(factor float64) error {
	if !validDistance(factor) {
		return fmt.Errorf("%w: %v", ErrInvalidZoomFactor, factor)
	}
	c.distance = gomath.Max(c.distance*factor, c.minDistance())
	return nil
}

// SetDistance sets the distance from the target.
func (c *ViewPoint3D) SetDistance(d float64) error {
	if !validDistance(d) {
		return fmt.Errorf("%w: %v", ErrInvalidDistance, d)
	}
	c.distance = d
	return nil
}

// Drag orbits the camera from a pointer drag of (deltaX, deltaY) canvas
// units: horizontal drags pan, vertical drags move up and down.
func (c *ViewPoint3D) Drag(deltaX, deltaY float64) {
	c.PanLeftRight(-deltaX * c.DragSensitivity)
	c.MoveUpDown(deltaY * c.DragSensitivity)
}

// HandleZoom zooms from a scroll wheel delta; positive deltas move closer.
// A delta whose zoom factor underflows to zero or overflows returns
// ErrInvalidZoomFactor and leaves the distance unchanged.
func (c *ViewPoint3D) HandleZoom(delta float64) error {
	return c.Zoom(gomath.Exp(-delta * c.ZoomSensitivity))
}

// FitToBounds aims the camera at the center of the box and backs off far
// enough to keep the whole box in view, keeping the current angles.
func (c *ViewPoint3D) FitToBounds(lo, hi math.Point3D) {
	c.Target = lo.Lerp(hi, 0.5)
	radius := hi.Distance(lo) / 2
	d := radius * 3
	if d < c.minDistance() {
		d = c.minDistance()
	}
	c.distance = d
}

// Position returns the camera position in world space.
func (c *ViewPoint3D) Position() math.Point3D {
	cosE := gomath.Cos(c.elevation)
	dir := math.Pt(
		cosE*gomath.Sin(c.azimuth),
		gomath.Sin(c.elevation),
		cosE*gomath.Cos(c.azimuth),
	)
	return c.Target.Add(dir.Scale(c.distance))
}

// Axes returns the camera's right, up and forward unit vectors in world
// space, with roll applied.
func (c *ViewPoint3D) Axes() (right, up, forward math.Point3D) {
	forward = c.Target.Sub(c.Position()).Normalize()
	right = forward.Cross(math.UnitY).Normalize()
	up = right.Cross(forward)

	if c.roll != 0 {
		cr, sr := gomath.Cos(c.roll), gomath.Sin(c.roll)
		right, up = right.Scale(cr).Add(up.Scale(sr)), up.Scale(cr).Sub(right.Scale(sr))
	}
	return right, up, forward
}

// ViewMatrix maps world points into camera space: the camera at the origin
// looking along +Z, +X to the right and +Y up.
func (c *ViewPoint3D) ViewMatrix() math.Mat4 {
	right, up, forward := c.Axes()
	return math.Basis(c.Position(), right, up, forward)
}

func (c *ViewPoint3D) minDistance() float64 {
	if c.MinDistance > 0 {
		return c.MinDistance
	}
	return DefaultMinDistance
}

func clampElevation(e float64) float64 {
	limit := gomath.Pi/2 - PoleMargin
	if e > limit {
		return limit
	}
	if e < -limit {
		return -limit
	}
	return e
}

func validDistance(d float64) bool {
	return d > 0 && !gomath.IsInf(d, 0) && !gomath.IsNaN(d)
}
