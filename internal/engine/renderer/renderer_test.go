package renderer

import (
	"errors"
	"image/color"
	gomath "math"
	"reflect"
	"testing"

	"github.com/Faultbox/chart3d/internal/engine/camera"
	"github.com/Faultbox/chart3d/internal/engine/model"
	"github.com/Faultbox/chart3d/internal/engine/picking"
	"github.com/Faultbox/chart3d/pkg/math"
)

const (
	testWidth  = 800
	testHeight = 600
	testFocal  = 1500
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

var cubeFaceTags = []string{"+z", "-z", "+x", "-x", "+y", "-y"}

func newTestRenderer(t *testing.T, ortho bool) *Renderer {
	t.Helper()
	r, err := New(Config{
		Width:  testWidth,
		Height: testHeight,
		Projection: Projection{
			FocalLength:  testFocal,
			Orthographic: ortho,
			NearPlane:    0.01,
		},
		HitTesting: true,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return r
}

func newViewPoint(t *testing.T, azimuth, elevation, distance float64) *camera.ViewPoint3D {
	t.Helper()
	vp, err := camera.New(math.Origin, azimuth, elevation, distance)
	if err != nil {
		t.Fatalf("camera.New failed: %v", err)
	}
	return vp
}

// cubeWorld returns a world holding one cube of edge 2 centered at the
// origin, each face tagged with the direction of its outward normal.
func cubeWorld(t *testing.T) *model.World {
	t.Helper()
	box := model.CreateBox(math.Origin, 2, 2, 2, red, nil)
	for i, f := range box.Faces() {
		f.Tag = cubeFaceTags[i]
	}
	w := model.NewWorld()
	if err := w.Add(box); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return w
}

func addSheet(t *testing.T, w *model.World, z, size float64, c color.RGBA, tag string) *model.Face {
	t.Helper()
	o := model.CreateZSheet(math.Pt(0, 0, z), size, c, tag)
	if err := w.Add(o); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return o.Faces()[0]
}

func approx(a, b float64) bool {
	return gomath.Abs(a-b) < 1e-9
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{Width: -1, Height: 10, Projection: DefaultProjection()}); !errors.Is(err, ErrInvalidCanvas) {
		t.Errorf("expected ErrInvalidCanvas, got %v", err)
	}
	if _, err := New(Config{Width: 10, Height: 10}); err == nil {
		t.Error("expected error for zero focal length")
	}
}

func TestCubeStraightOn(t *testing.T) {
	r := newTestRenderer(t, false)
	frame, err := r.Render(cubeWorld(t), newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Looking straight at the +z face, the other five face away or are
	// seen edge-on.
	if len(frame.Ops) != 1 || frame.Ops[0].Tag != "+z" {
		t.Fatalf("expected only the +z face, got %v", frame.Tags())
	}
	if frame.Culled != 5 {
		t.Errorf("Culled = %d, want 5", frame.Culled)
	}

	b, ok := frame.Bounds()
	if !ok {
		t.Fatal("expected painted bounds")
	}
	c := b.Center()
	if !approx(c.X, testWidth/2) || !approx(c.Y, testHeight/2) {
		t.Errorf("bounds center = %v, want canvas center", c)
	}
	// The front face is 9 units from the camera: half an edge scaled by
	// focal/9.
	half := 1.0 * testFocal / 9
	if !approx(b.Width(), 2*half) || !approx(b.Height(), 2*half) {
		t.Errorf("bounds size = %vx%v, want %v", b.Width(), b.Height(), 2*half)
	}
}

func TestCubeObliqueShowsThreeFaces(t *testing.T) {
	r := newTestRenderer(t, false)
	frame, err := r.Render(cubeWorld(t), newViewPoint(t, gomath.Pi/4, 0.5, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := map[any]bool{}
	for _, tag := range frame.Tags() {
		got[tag] = true
	}
	want := map[any]bool{"+x": true, "+y": true, "+z": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("visible faces = %v, want %v", frame.Tags(), want)
	}

	for i := 1; i < len(frame.Ops); i++ {
		if frame.Ops[i].Depth > frame.Ops[i-1].Depth {
			t.Errorf("op %d depth %v is farther than op %d depth %v", i, frame.Ops[i].Depth, i-1, frame.Ops[i-1].Depth)
		}
	}

	b, _ := frame.Bounds()
	c := b.Center()
	if gomath.Abs(c.X-testWidth/2) > 60 || gomath.Abs(c.Y-testHeight/2) > 60 {
		t.Errorf("cube should be roughly centered, bounds center %v", c)
	}
}

func TestZoomShrinksExtents(t *testing.T) {
	r := newTestRenderer(t, false)
	w := cubeWorld(t)
	vp := newViewPoint(t, 0, 0, 10)

	before, _ := r.Render(w, vp)
	if err := vp.Zoom(2); err != nil {
		t.Fatalf("Zoom failed: %v", err)
	}
	after, _ := r.Render(w, vp)

	b1, _ := before.Bounds()
	b2, _ := after.Bounds()

	// Front face depth goes from 9 to 19.
	want := 9.0 / 19.0
	if got := b2.Width() / b1.Width(); !approx(got, want) {
		t.Errorf("width ratio = %v, want %v", got, want)
	}
	if got := b2.Height() / b1.Height(); !approx(got, want) {
		t.Errorf("height ratio = %v, want %v", got, want)
	}
}

func TestOrthographicZoomHalvesExtents(t *testing.T) {
	r := newTestRenderer(t, true)
	w := cubeWorld(t)
	vp := newViewPoint(t, 0, 0, 10)

	before, _ := r.Render(w, vp)
	_ = vp.Zoom(2)
	after, _ := r.Render(w, vp)

	b1, _ := before.Bounds()
	b2, _ := after.Bounds()
	if got := b2.Width() / b1.Width(); !approx(got, 0.5) {
		t.Errorf("width ratio = %v, want 0.5", got)
	}
	// Without perspective the front face is exactly edge * focal/distance.
	if !approx(b1.Width(), 2*testFocal/10.0) {
		t.Errorf("orthographic width = %v, want %v", b1.Width(), 2*testFocal/10.0)
	}
}

func TestPaintOrderStable(t *testing.T) {
	r := newTestRenderer(t, false)
	w := cubeWorld(t)
	addSheet(t, w, 3, 1, blue, "a")
	addSheet(t, w, 3, 1, blue, "b")
	vp := newViewPoint(t, 0.3, 0.2, 12)

	first, err := r.Render(w, vp)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := r.Render(w, vp)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !reflect.DeepEqual(first.Ops, second.Ops) {
		t.Error("re-rendering an unchanged scene changed the paint operations")
	}
}

func TestEqualDepthKeepsWorldOrder(t *testing.T) {
	r := newTestRenderer(t, false)
	w := model.NewWorld()
	addSheet(t, w, 0, 2, red, "first")
	addSheet(t, w, 0, 2, blue, "second")

	frame, err := r.Render(w, newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := frame.Tags(); !reflect.DeepEqual(got, []any{"first", "second"}) {
		t.Errorf("paint order = %v, want [first second]", got)
	}
}

func TestDepthMonotonicity(t *testing.T) {
	r := newTestRenderer(t, false)
	w := model.NewWorld()
	// Added nearest first so that only sorting can put them in order.
	addSheet(t, w, 2, 1, red, "near")
	addSheet(t, w, -1, 1, red, "middle")
	addSheet(t, w, -6, 1, red, "far")

	frame, err := r.Render(w, newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := frame.Tags(); !reflect.DeepEqual(got, []any{"far", "middle", "near"}) {
		t.Errorf("paint order = %v, want [far middle near]", got)
	}
}

func TestHitTestPrefersNearerFace(t *testing.T) {
	r := newTestRenderer(t, false)
	w := model.NewWorld()
	addSheet(t, w, 2, 2, red, "near")
	addSheet(t, w, -2, 4, blue, "far")

	frame, err := r.Render(w, newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	center := testWidth / 2.0
	e, ok := frame.Info.FindElementAt(center, testHeight/2.0)
	if !ok || e.Tag != "near" {
		t.Errorf("center hit = %v, want near", e)
	}

	// The far sheet is larger, so a point near its edge only hits it.
	farEdge := center + 1.9*testFocal/12
	e, ok = frame.Info.FindElementAt(farEdge, testHeight/2.0)
	if !ok || e.Tag != "far" {
		t.Errorf("edge hit = %v, want far", e)
	}

	if _, ok := frame.Info.FindElementAt(1, 1); ok {
		t.Error("corner of the canvas should hit nothing")
	}
}

func TestCustomDepthRule(t *testing.T) {
	r := newTestRenderer(t, false)
	w := model.NewWorld()
	backdrop := addSheet(t, w, 2, 4, red, "backdrop")
	backdrop.Depth = model.AlwaysBehind()
	addSheet(t, w, -3, 1, blue, "item")

	frame, err := r.Render(w, newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := frame.Tags(); !reflect.DeepEqual(got, []any{"backdrop", "item"}) {
		t.Errorf("paint order = %v, want [backdrop item]", got)
	}
}

func TestFacesBehindCameraAreSkipped(t *testing.T) {
	r := newTestRenderer(t, false)
	w := model.NewWorld()
	addSheet(t, w, 20, 1, red, "behind")
	addSheet(t, w, 0, 1, blue, "visible")

	frame, err := r.Render(w, newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if frame.Clipped != 1 {
		t.Errorf("Clipped = %d, want 1", frame.Clipped)
	}
	if got := frame.Tags(); !reflect.DeepEqual(got, []any{"visible"}) {
		t.Errorf("painted = %v, want [visible]", got)
	}
}

func TestFaceCrossingNearPlaneIsClipped(t *testing.T) {
	r := newTestRenderer(t, false)
	w := model.NewWorld()
	floor := model.CreateYSheet(math.Pt(0, -1, 0), 100, red, "floor")
	_ = w.Add(floor)

	frame, err := r.Render(w, newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(frame.Ops) != 1 {
		t.Fatalf("expected the clipped floor to be painted, got %d ops", len(frame.Ops))
	}
	for _, p := range frame.Ops[0].Polygon {
		if gomath.IsNaN(p.X) || gomath.IsInf(p.X, 0) || gomath.IsNaN(p.Y) || gomath.IsInf(p.Y, 0) {
			t.Fatalf("clipped polygon has a non-finite point %v", p)
		}
		// Everything in front of the camera and below eye level lands in
		// the lower half of the canvas.
		if p.Y < testHeight/2 {
			t.Errorf("floor point %v above the horizon", p)
		}
	}
}

func TestOutOfRangeVertexIsFatal(t *testing.T) {
	r := newTestRenderer(t, false)
	o := model.NewObject3D()
	o.AddVertices(math.Origin, math.UnitX, math.UnitY)
	if _, err := o.NewFace([]int{0, 1, 3}, red, nil); err != nil {
		t.Fatalf("NewFace failed: %v", err)
	}
	w := model.NewWorld()
	_ = w.Add(o)

	frame, err := r.Render(w, newViewPoint(t, 0, 0, 10))
	if !errors.Is(err, model.ErrVertexIndexOutOfRange) {
		t.Errorf("expected ErrVertexIndexOutOfRange, got %v", err)
	}
	if frame != nil {
		t.Error("failed render should not return a frame")
	}
}

func TestMissingDepthFuncIsFatal(t *testing.T) {
	r := newTestRenderer(t, false)
	w := model.NewWorld()
	f := addSheet(t, w, 0, 1, red, "sheet")
	f.Depth = model.DepthRule{Kind: model.DepthCustom}

	if _, err := r.Render(w, newViewPoint(t, 0, 0, 10)); !errors.Is(err, model.ErrMissingDepthFunc) {
		t.Errorf("expected ErrMissingDepthFunc, got %v", err)
	}
}

func TestSharedFacePaintsEachOwner(t *testing.T) {
	r := newTestRenderer(t, false)
	shared, err := model.NewFace([]int{0, 1, 2}, red, "shared")
	if err != nil {
		t.Fatalf("NewFace failed: %v", err)
	}
	shared.DoubleSided = true

	a := model.NewObject3D()
	a.AddVertices(math.Pt(-1, -1, 0), math.Pt(1, -1, 0), math.Pt(0, 1, 0))
	a.AddFace(shared)
	b := model.NewObject3D()
	b.AddVertices(math.Pt(4, -1, 0), math.Pt(6, -1, 0), math.Pt(5, 1, 0))
	b.AddFace(shared)
	w := model.NewWorld()
	if err := w.AddAll(a, b); err != nil {
		t.Fatalf("AddAll failed: %v", err)
	}

	frame, err := r.Render(w, newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(frame.Ops) != 2 {
		t.Fatalf("expected 2 ops, got %d", len(frame.Ops))
	}
	if reflect.DeepEqual(frame.Ops[0].Polygon, frame.Ops[1].Polygon) {
		t.Error("both occurrences painted the same geometry")
	}
	// The first owner is centered on the target.
	if _, ok := frame.Info.FindElementAt(testWidth/2, testHeight/2); !ok {
		t.Error("expected the first owner's triangle under the canvas center")
	}
}

func TestEmptyWorldAndCanvas(t *testing.T) {
	r := newTestRenderer(t, false)
	frame, err := r.Render(model.NewWorld(), newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(frame.Ops) != 0 || frame.Info.Len() != 0 {
		t.Error("empty world should produce an empty frame")
	}

	if err := r.Resize(0, 0); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	frame, err = r.Render(cubeWorld(t), newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(frame.Ops) != 0 || frame.Info.Len() != 0 {
		t.Error("empty canvas should produce an empty frame")
	}
}

func TestHitTestingDisabled(t *testing.T) {
	r, err := New(Config{Width: 100, Height: 100, Projection: DefaultProjection()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	frame, err := r.Render(cubeWorld(t), newViewPoint(t, 0, 0, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if frame.Info != nil {
		t.Error("Info should be nil when hit testing is disabled")
	}
}

type labelTag string

func (labelTag) ElementKind() picking.ElementKind { return picking.AxisLabel }

func TestTagKindIsRecorded(t *testing.T) {
	r := newTestRenderer(t, false)
	w := model.NewWorld()
	o := model.CreateZSheet(math.Origin, 1, red, labelTag("x"))
	_ = w.Add(o)

	frame, _ := r.Render(w, newViewPoint(t, 0, 0, 10))
	elems := frame.Info.ProjectedElements()
	if len(elems) != 1 || elems[0].Kind != picking.AxisLabel {
		t.Errorf("expected one AxisLabel element, got %+v", elems)
	}
}

func TestProjectorProjectsTargetToCenter(t *testing.T) {
	r := newTestRenderer(t, false)
	vp, _ := camera.New(math.Pt(3, -2, 7), 1.1, -0.4, 25)
	pr := r.Projector(vp)

	p, ok := pr.Project(vp.Target)
	if !ok {
		t.Fatal("target should be in front of the camera")
	}
	if !approx(p.X, testWidth/2) || !approx(p.Y, testHeight/2) {
		t.Errorf("Project(target) = %v, want canvas center", p)
	}

	if _, ok := pr.Project(vp.Position()); ok {
		t.Error("the camera position itself should not project")
	}
}

func TestProjectionMonotonicInDepth(t *testing.T) {
	r := newTestRenderer(t, false)
	pr := r.Projector(newViewPoint(t, 0, 0, 10))

	prev := gomath.Inf(1)
	for z := 0.5; z < 100; z += 0.5 {
		p, ok := pr.ProjectCamera(math.Pt(1, 0, z))
		if !ok {
			t.Fatalf("z=%v should project", z)
		}
		offset := p.X - testWidth/2
		if offset >= prev {
			t.Fatalf("screen offset grew with depth at z=%v", z)
		}
		prev = offset
	}
}

type recordingCanvas struct {
	fills, strokes int
}

func (c *recordingCanvas) FillPolygon([]math.Vec2, color.Color)   { c.fills++ }
func (c *recordingCanvas) StrokePolygon([]math.Vec2, color.Color) { c.strokes++ }

func TestFramePaint(t *testing.T) {
	r, _ := New(Config{
		Width:      testWidth,
		Height:     testHeight,
		Projection: DefaultProjection(),
		Outlines:   true,
	})
	frame, err := r.Render(cubeWorld(t), newViewPoint(t, gomath.Pi/4, 0.5, 10))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	var c recordingCanvas
	frame.Paint(&c)
	if c.fills != 3 || c.strokes != 3 {
		t.Errorf("fills=%d strokes=%d, want 3 and 3", c.fills, c.strokes)
	}
}

func TestZoomToFit(t *testing.T) {
	r := newTestRenderer(t, false)
	w := cubeWorld(t)
	vp := newViewPoint(t, 0.6, 0.4, 3)

	const margin = 50
	if err := r.ZoomToFit(w, vp, margin); err != nil {
		t.Fatalf("ZoomToFit failed: %v", err)
	}
	frame, err := r.Render(w, vp)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b, _ := frame.Bounds()
	if b.Min.X < margin-3 || b.Min.Y < margin-3 || b.Max.X > testWidth-margin+3 || b.Max.Y > testHeight-margin+3 {
		t.Errorf("fitted bounds %+v exceed the margin", b)
	}
	// The limiting dimension should nearly fill the available space.
	fill := gomath.Max(b.Width()/(testWidth-2*margin), b.Height()/(testHeight-2*margin))
	if fill < 0.8 {
		t.Errorf("fitted scene fills only %.2f of the canvas", fill)
	}

	if err := r.ZoomToFit(model.NewWorld(), vp, margin); err != nil {
		t.Errorf("empty world should be a no-op, got %v", err)
	}
	if err := r.ZoomToFit(w, vp, testWidth); !errors.Is(err, ErrNoRoomToFit) {
		t.Errorf("expected ErrNoRoomToFit, got %v", err)
	}
}
