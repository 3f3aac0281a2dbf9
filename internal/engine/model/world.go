package model

import (
	"slices"

	"github.com/Faultbox/chart3d/pkg/math"
)

// World is an ordered collection of objects viewed as one vertex buffer and
// one face list.
//
// Faces returned by Faces are per-occurrence copies carrying the offset for
// this world, so the same face or object may appear in several objects or
// worlds at once.
type World struct {
	objects []*Object3D
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// Add appends an object. An object can be added to a world only once.
func (w *World) Add(o *Object3D) error {
	if slices.Contains(w.objects, o) {
		return ErrObjectAlreadyAdded
	}
	w.objects = append(w.objects, o)
	return nil
}

// AddAll appends objects in order, stopping at the first error.
func (w *World) AddAll(objs ...*Object3D) error {
	for _, o := range objs {
		if err := w.Add(o); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes an object and reports whether it was present.
func (w *World) Remove(o *Object3D) bool {
	i := slices.Index(w.objects, o)
	if i < 0 {
		return false
	}
	w.objects = slices.Delete(w.objects, i, i+1)
	return true
}

// Clear removes every object.
func (w *World) Clear() {
	w.objects = nil
}

// Objects returns the objects in insertion order.
func (w *World) Objects() []*Object3D {
	return slices.Clone(w.objects)
}

// ObjectCount returns the number of objects.
func (w *World) ObjectCount() int {
	return len(w.objects)
}

// VertexCount returns the total number of vertices across all objects.
func (w *World) VertexCount() int {
	n := 0
	for _, o := range w.objects {
		n += len(o.vertices)
	}
	return n
}

// Vertices returns the concatenated vertex buffer.
func (w *World) Vertices() []math.Point3D {
	buf := make([]math.Point3D, 0, w.VertexCount())
	for _, o := range w.objects {
		buf = append(buf, o.vertices...)
	}
	return buf
}

// Faces returns copies of every face in object then face order, each with
// its offset set to the number of vertices in the objects before its owner.
// The objects' own faces are not modified.
func (w *World) Faces() []*Face {
	faces := make([]*Face, 0, w.FaceCount())
	offset := 0
	for _, o := range w.objects {
		for _, f := range o.faces {
			c := *f
			c.offset = offset
			faces = append(faces, &c)
		}
		offset += len(o.vertices)
	}
	return faces
}

// FaceCount returns the total number of faces.
func (w *World) FaceCount() int {
	n := 0
	for _, o := range w.objects {
		n += len(o.faces)
	}
	return n
}

// Bounds returns the bounding box of all vertices.
func (w *World) Bounds() Bounds {
	b := EmptyBounds()
	for _, o := range w.objects {
		b = b.Union(o.Bounds())
	}
	return b
}
