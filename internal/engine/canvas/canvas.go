// Package canvas rasterizes rendered frames into in-memory images.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	gomath "math"

	"golang.org/x/image/vector"

	"github.com/Faultbox/chart3d/pkg/math"
)

// DefaultStrokeWidth is the outline width in pixels.
const DefaultStrokeWidth = 1.0

// ImageCanvas paints polygons onto an *image.RGBA with anti-aliasing.
type ImageCanvas struct {
	img *image.RGBA
	ras *vector.Rasterizer

	// StrokeWidth is the outline width in pixels.
	StrokeWidth float64
	// OutlineShade is how much darker than the fill outlines are drawn,
	// from 0 (same color) to 1 (black).
	OutlineShade float64
}

// New creates a width x height canvas filled with bg.
func New(width, height int, bg color.Color) *ImageCanvas {
	c := NewFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	c.Clear(bg)
	return c
}

// NewFromImage paints onto an existing image.
func NewFromImage(img *image.RGBA) *ImageCanvas {
	return &ImageCanvas{
		img:          img,
		ras:          &vector.Rasterizer{},
		StrokeWidth:  DefaultStrokeWidth,
		OutlineShade: 0.35,
	}
}

// Image returns the backing image.
func (c *ImageCanvas) Image() *image.RGBA { return c.img }

// Size returns the canvas size in pixels.
func (c *ImageCanvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear fills the whole canvas with bg.
func (c *ImageCanvas) Clear(bg color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// FillPolygon fills the closed polygon pts with col.
func (c *ImageCanvas) FillPolygon(pts []math.Vec2, col color.Color) {
	if len(pts) < 3 {
		return
	}
	c.begin()
	c.path(pts)
	c.draw(col)
}

// StrokePolygon outlines the closed polygon pts in a darker shade of col.
func (c *ImageCanvas) StrokePolygon(pts []math.Vec2, col color.Color) {
	if len(pts) < 2 || c.StrokeWidth <= 0 {
		return
	}
	half := c.StrokeWidth / 2
	c.begin()
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		d := b.Sub(a)
		if d.Length() == 0 {
			continue
		}
		// Each edge becomes a thin quad. All quads share one winding so
		// overlapping corners add up instead of cancelling.
		n := math.Vec2{X: -d.Y, Y: d.X}.Normalize().Scale(half)
		c.path([]math.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
	}
	c.draw(Darken(col, c.OutlineShade))
}

func (c *ImageCanvas) begin() {
	b := c.img.Bounds()
	c.ras.Reset(b.Dx(), b.Dy())
}

func (c *ImageCanvas) path(pts []math.Vec2) {
	c.ras.MoveTo(clampCoord(pts[0].X), clampCoord(pts[0].Y))
	for _, p := range pts[1:] {
		c.ras.LineTo(clampCoord(p.X), clampCoord(p.Y))
	}
	c.ras.ClosePath()
}

func (c *ImageCanvas) draw(col color.Color) {
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// maxCoord keeps clipped geometry, which may land far outside the canvas,
// within float32 range the rasterizer handles.
const maxCoord = 1 << 20

func clampCoord(v float64) float32 {
	return float32(gomath.Max(-maxCoord, gomath.Min(maxCoord, v)))
}
