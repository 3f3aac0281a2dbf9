package model

import (
	"image/color"
	"maps"

	"github.com/Faultbox/chart3d/pkg/math"
)

// Common property keys set by scene builders.
const (
	PropKey    = "key"
	PropSeries = "series"
	PropRow    = "row"
	PropColumn = "column"
)

// Object3D is a mesh: an append-only vertex list plus faces that reference
// those vertices by local index.
type Object3D struct {
	vertices []math.Point3D
	faces    []*Face
	props    map[string]any
}

// NewObject3D creates an empty object.
func NewObject3D() *Object3D {
	return &Object3D{}
}

// AddVertex appends a vertex and returns its local index.
func (o *Object3D) AddVertex(p math.Point3D) int {
	o.vertices = append(o.vertices, p)
	return len(o.vertices) - 1
}

// AddVertices appends vertices in order.
func (o *Object3D) AddVertices(pts ...math.Point3D) {
	o.vertices = append(o.vertices, pts...)
}

// AddFace appends a face. Index ranges are checked at render time, so
// vertices may be added after the faces that use them.
func (o *Object3D) AddFace(f *Face) {
	o.faces = append(o.faces, f)
}

// NewFace creates a face over local indices and appends it.
func (o *Object3D) NewFace(indices []int, c color.Color, tag any) (*Face, error) {
	f, err := NewFace(indices, c, tag)
	if err != nil {
		return nil, err
	}
	o.AddFace(f)
	return f, nil
}

// VertexCount returns the number of vertices.
func (o *Object3D) VertexCount() int {
	return len(o.vertices)
}

// Vertex returns the vertex at local index i.
func (o *Object3D) Vertex(i int) math.Point3D {
	return o.vertices[i]
}

// Vertices returns a copy of the vertex list.
func (o *Object3D) Vertices() []math.Point3D {
	return append([]math.Point3D(nil), o.vertices...)
}

// FaceCount returns the number of faces.
func (o *Object3D) FaceCount() int {
	return len(o.faces)
}

// Faces returns the faces in insertion order.
func (o *Object3D) Faces() []*Face {
	return append([]*Face(nil), o.faces...)
}

// Property returns a stored property.
func (o *Object3D) Property(key string) (any, bool) {
	v, ok := o.props[key]
	return v, ok
}

// SetProperty stores a property.
func (o *Object3D) SetProperty(key string, value any) {
	if o.props == nil {
		o.props = make(map[string]any)
	}
	o.props[key] = value
}

// Properties returns a copy of all properties.
func (o *Object3D) Properties() map[string]any {
	return maps.Clone(o.props)
}

// Bounds returns the bounding box of the vertices.
func (o *Object3D) Bounds() Bounds {
	b := EmptyBounds()
	for _, v := range o.vertices {
		b = b.Extend(v)
	}
	return b
}

// Transformed returns a copy of o with every vertex passed through t.
func (o *Object3D) Transformed(t math.Transformer) *Object3D {
	out := &Object3D{
		vertices: make([]math.Point3D, len(o.vertices)),
		faces:    make([]*Face, len(o.faces)),
		props:    maps.Clone(o.props),
	}
	for i, v := range o.vertices {
		out.vertices[i] = t.Apply(v)
	}
	for i, f := range o.faces {
		c := *f
		c.indices = f.Indices()
		c.offset = 0
		out.faces[i] = &c
	}
	return out
}

// Translate returns a copy of o moved by d.
func (o *Object3D) Translate(d math.Point3D) *Object3D {
	return o.Transformed(math.Translate(d))
}
