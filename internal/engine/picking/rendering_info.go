package picking

import (
	"github.com/Faultbox/chart3d/pkg/math"
)

// ElementKind classifies what a rendered element represents.
type ElementKind uint8

const (
	DataItem ElementKind = iota
	Section
	AxisLabel
	AxisTickLabel
	LegendItem
	Title
)

func (k ElementKind) String() string {
	switch k {
	case DataItem:
		return "data_item"
	case Section:
		return "section"
	case AxisLabel:
		return "axis_label"
	case AxisTickLabel:
		return "axis_tick_label"
	case LegendItem:
		return "legend_item"
	case Title:
		return "title"
	default:
		return "unknown"
	}
}

// Element is one hit-testable shape drawn on the canvas.
type Element struct {
	Kind ElementKind
	// Tag is the owner value supplied by the scene builder, passed through
	// untouched.
	Tag    any
	Shape  []math.Vec2
	Bounds Rect

	props map[string]any
}

// Contains reports whether (x, y) lies inside the element's shape.
func (e *Element) Contains(x, y float64) bool {
	return e.Bounds.Contains(x, y) && PolygonContains(e.Shape, x, y)
}

// Property returns an element property.
func (e *Element) Property(key string) (any, bool) {
	v, ok := e.props[key]
	return v, ok
}

// SetProperty stores an element property.
func (e *Element) SetProperty(key string, value any) {
	if e.props == nil {
		e.props = make(map[string]any)
	}
	e.props[key] = value
}

// RenderingInfo indexes the elements drawn by one render pass.
//
// Projected elements come from 3D faces and are stored in paint order, so
// later elements are nearer the viewer. Offset elements are 2D overlays
// placed directly in screen space; they sit above the whole 3D scene.
type RenderingInfo struct {
	projected []*Element
	offset    []*Element
}

// New creates an empty index.
func New() *RenderingInfo {
	return &RenderingInfo{}
}

// AddProjected records a projected element. shape is copied.
func (ri *RenderingInfo) AddProjected(shape []math.Vec2, kind ElementKind, tag any) *Element {
	e := newElement(shape, kind, tag)
	ri.projected = append(ri.projected, e)
	return e
}

// AddOffset records a 2D overlay element. shape is copied.
func (ri *RenderingInfo) AddOffset(shape []math.Vec2, kind ElementKind, tag any) *Element {
	e := newElement(shape, kind, tag)
	ri.offset = append(ri.offset, e)
	return e
}

// AddOffsetRect records a rectangular overlay element, such as a label's
// bounding box.
func (ri *RenderingInfo) AddOffsetRect(r Rect, kind ElementKind, tag any) *Element {
	return ri.AddOffset(r.Polygon(), kind, tag)
}

// FindElementAt returns the topmost element containing (x, y). Offset
// elements are checked before projected ones.
func (ri *RenderingInfo) FindElementAt(x, y float64) (*Element, bool) {
	if e, ok := ri.FindOffsetElementAt(x, y); ok {
		return e, true
	}
	return ri.FindProjectedElementAt(x, y)
}

// FindProjectedElementAt returns the nearest projected element containing
// (x, y).
func (ri *RenderingInfo) FindProjectedElementAt(x, y float64) (*Element, bool) {
	return lastContaining(ri.projected, x, y)
}

// FindOffsetElementAt returns the last-added offset element containing (x, y).
func (ri *RenderingInfo) FindOffsetElementAt(x, y float64) (*Element, bool) {
	return lastContaining(ri.offset, x, y)
}

// ElementsAt returns every element containing (x, y), topmost first.
func (ri *RenderingInfo) ElementsAt(x, y float64) []*Element {
	var hits []*Element
	for _, list := range [][]*Element{ri.offset, ri.projected} {
		for i := len(list) - 1; i >= 0; i-- {
			if list[i].Contains(x, y) {
				hits = append(hits, list[i])
			}
		}
	}
	return hits
}

// ProjectedElements returns the projected elements in paint order.
func (ri *RenderingInfo) ProjectedElements() []*Element {
	return append([]*Element(nil), ri.projected...)
}

// OffsetElements returns the offset elements in insertion order.
func (ri *RenderingInfo) OffsetElements() []*Element {
	return append([]*Element(nil), ri.offset...)
}

// Len returns the total number of elements.
func (ri *RenderingInfo) Len() int {
	return len(ri.projected) + len(ri.offset)
}

// Reset drops every element.
func (ri *RenderingInfo) Reset() {
	ri.projected = ri.projected[:0]
	ri.offset = ri.offset[:0]
}

func newElement(shape []math.Vec2, kind ElementKind, tag any) *Element {
	pts := append([]math.Vec2(nil), shape...)
	bounds, _ := BoundsOf(pts)
	return &Element{Kind: kind, Tag: tag, Shape: pts, Bounds: bounds}
}

func lastContaining(list []*Element, x, y float64) (*Element, bool) {
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Contains(x, y) {
			return list[i], true
		}
	}
	return nil, false
}

// KindProvider is implemented by owner tags that want to be indexed as
// something other than a DataItem.
type KindProvider interface {
	ElementKind() ElementKind
}

// KindOf returns the element kind for an owner tag.
func KindOf(tag any) ElementKind {
	if kp, ok := tag.(KindProvider); ok {
		return kp.ElementKind()
	}
	return DataItem
}
