package camera

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/chart3d/pkg/math"
)

func near(a, b math.Point3D) bool {
	const eps = 1e-9
	return gomath.Abs(a.X-b.X) < eps && gomath.Abs(a.Y-b.Y) < eps && gomath.Abs(a.Z-b.Z) < eps
}

func TestNewRejectsBadDistance(t *testing.T) {
	for _, d := range []float64{0, -1, gomath.NaN(), gomath.Inf(1)} {
		if _, err := New(math.Origin, 0, 0, d); !errors.Is(err, ErrInvalidDistance) {
			t.Errorf("New(distance=%v) error = %v, want ErrInvalidDistance", d, err)
		}
	}
}

func TestPositionAndAxes(t *testing.T) {
	vp, err := New(math.Pt(1, 2, 3), 0, 0, 10)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := vp.Position(); !near(got, math.Pt(1, 2, 13)) {
		t.Errorf("Position() = %v, want (1, 2, 13)", got)
	}
	right, up, forward := vp.Axes()
	if !near(right, math.UnitX) || !near(up, math.UnitY) || !near(forward, math.Pt(0, 0, -1)) {
		t.Errorf("Axes() = %v %v %v", right, up, forward)
	}
}

func TestViewMatrix(t *testing.T) {
	vp, _ := New(math.Origin, 0.7, 0.3, 10)
	m := vp.ViewMatrix()

	if got := m.Apply(vp.Position()); !near(got, math.Origin) {
		t.Errorf("camera position should map to origin, got %v", got)
	}
	if got := m.Apply(vp.Target); !near(got, math.Pt(0, 0, 10)) {
		t.Errorf("target should map to (0, 0, 10), got %v", got)
	}
}

func TestPanLeftRight(t *testing.T) {
	vp, _ := New(math.Origin, 0, 0, 10)
	vp.PanLeftRight(gomath.Pi / 2)
	if got := vp.Position(); !near(got, math.Pt(10, 0, 0)) {
		t.Errorf("after quarter pan Position() = %v, want (10, 0, 0)", got)
	}
}

func TestMoveUpDownClamps(t *testing.T) {
	vp, _ := New(math.Origin, 0, 0, 10)
	vp.MoveUpDown(10)
	limit := gomath.Pi/2 - PoleMargin
	if vp.Elevation() != limit {
		t.Errorf("Elevation() = %v, want %v", vp.Elevation(), limit)
	}
	vp.MoveUpDown(-20)
	if vp.Elevation() != -limit {
		t.Errorf("Elevation() = %v, want %v", vp.Elevation(), -limit)
	}

	// Axes stay well defined right at the limit.
	right, up, _ := vp.Axes()
	if gomath.Abs(right.Length()-1) > 1e-9 || gomath.Abs(up.Length()-1) > 1e-9 {
		t.Errorf("degenerate axes at pole limit: %v %v", right, up)
	}
}

func TestZoom(t *testing.T) {
	tests := []struct {
		name    string
		factor  float64
		want    float64
		wantErr error
	}{
		{"double", 2, 20, nil},
		{"half", 0.5, 5, nil},
		{"floor", 1e-12, DefaultMinDistance, nil},
		{"zero", 0, 10, ErrInvalidZoomFactor},
		{"negative", -2, 10, ErrInvalidZoomFactor},
		{"nan", gomath.NaN(), 10, ErrInvalidZoomFactor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp, _ := New(math.Origin, 0, 0, 10)
			err := vp.Zoom(tt.factor)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Zoom() error = %v, want %v", err, tt.wantErr)
			}
			if vp.Distance() != tt.want {
				t.Errorf("Distance() = %v, want %v", vp.Distance(), tt.want)
			}
		})
	}
}

func TestRoll(t *testing.T) {
	vp, _ := New(math.Origin, 0, 0, 10)
	vp.Roll(gomath.Pi / 2)
	right, up, forward := vp.Axes()
	if !near(forward, math.Pt(0, 0, -1)) {
		t.Errorf("roll must not change forward, got %v", forward)
	}
	if !near(right, math.UnitY) || !near(up, math.Pt(-1, 0, 0)) {
		t.Errorf("after quarter roll right=%v up=%v", right, up)
	}
	if vp.RollAngle() != gomath.Pi/2 {
		t.Errorf("RollAngle() = %v", vp.RollAngle())
	}
}

func TestDragAndHandleZoom(t *testing.T) {
	vp, _ := New(math.Origin, 0, 0, 10)
	vp.Drag(100, -40)
	if got, want := vp.Azimuth(), -100*vp.DragSensitivity; got != want {
		t.Errorf("Azimuth() = %v, want %v", got, want)
	}
	if got, want := vp.Elevation(), -40*vp.DragSensitivity; got != want {
		t.Errorf("Elevation() = %v, want %v", got, want)
	}

	if err := vp.HandleZoom(1); err != nil {
		t.Fatalf("HandleZoom failed: %v", err)
	}
	if vp.Distance() >= 10 {
		t.Errorf("positive wheel delta should move closer, distance %v", vp.Distance())
	}

	before := vp.Distance()
	for _, delta := range []float64{1e5, -1e5, gomath.NaN()} {
		if err := vp.HandleZoom(delta); !errors.Is(err, ErrInvalidZoomFactor) {
			t.Errorf("HandleZoom(%v): expected ErrInvalidZoomFactor, got %v", delta, err)
		}
	}
	if vp.Distance() != before {
		t.Errorf("rejected wheel deltas changed the distance to %v", vp.Distance())
	}
}

func TestFitToBounds(t *testing.T) {
	vp := Default()
	vp.FitToBounds(math.Pt(-1, -1, -1), math.Pt(3, 1, 1))
	if vp.Target != math.Pt(1, 0, 0) {
		t.Errorf("Target = %v, want (1, 0, 0)", vp.Target)
	}
	radius := math.Pt(-1, -1, -1).Distance(math.Pt(3, 1, 1)) / 2
	if vp.Distance() <= radius {
		t.Errorf("Distance() = %v should exceed the bounding radius %v", vp.Distance(), radius)
	}
}
