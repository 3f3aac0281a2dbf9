package renderer

import (
	"image/color"

	"github.com/Faultbox/chart3d/internal/engine/picking"
	"github.com/Faultbox/chart3d/pkg/math"
)

// PaintOp is one filled polygon, in canvas coordinates, ready to paint.
type PaintOp struct {
	Polygon []math.Vec2
	Fill    color.RGBA
	Outline bool
	Tag     any
	// Depth is the sort key the face was ordered by.
	Depth float64
}

// Canvas is the host 2D drawing surface a Frame is painted onto.
type Canvas interface {
	FillPolygon(pts []math.Vec2, c color.Color)
	StrokePolygon(pts []math.Vec2, c color.Color)
}

// Frame is the result of one render pass.
type Frame struct {
	Width, Height float64
	// Ops are in paint order: farthest first.
	Ops []PaintOp
	// Info is the hit-test index, nil when hit testing is disabled.
	Info *picking.RenderingInfo
	// Projector projects further points with the same camera and canvas.
	Projector *Projector

	// Culled counts faces skipped for facing away or having no area.
	Culled int
	// Clipped counts faces skipped for lying behind the near plane.
	Clipped int
}

// Paint replays the paint operations onto c.
func (f *Frame) Paint(c Canvas) {
	for _, op := range f.Ops {
		c.FillPolygon(op.Polygon, op.Fill)
		if op.Outline {
			c.StrokePolygon(op.Polygon, op.Fill)
		}
	}
}

// Bounds returns the screen rectangle covering every painted polygon. ok is
// false when nothing was painted.
func (f *Frame) Bounds() (r picking.Rect, ok bool) {
	for _, op := range f.Ops {
		b, has := picking.BoundsOf(op.Polygon)
		if !has {
			continue
		}
		if !ok {
			r, ok = b, true
			continue
		}
		r = r.Union(b)
	}
	return r, ok
}

// Tags returns the owner tags in paint order.
func (f *Frame) Tags() []any {
	tags := make([]any, len(f.Ops))
	for i, op := range f.Ops {
		tags[i] = op.Tag
	}
	return tags
}
