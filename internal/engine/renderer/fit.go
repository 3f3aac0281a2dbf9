package renderer

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/chart3d/internal/engine/camera"
	"github.com/Faultbox/chart3d/internal/engine/model"
	"github.com/Faultbox/chart3d/internal/logger"
	"github.com/Faultbox/chart3d/pkg/math"
)

const (
	fitIterations = 40
	fitTolerance  = 0.005
)

// ZoomToFit adjusts vp's distance so the projected world fills the canvas
// less margin on every side, keeping the camera angles. An empty world
// leaves vp unchanged.
func (r *Renderer) ZoomToFit(w *model.World, vp *camera.ViewPoint3D, margin float64) error {
	availW := r.config.Width - 2*margin
	availH := r.config.Height - 2*margin
	if availW <= 0 || availH <= 0 {
		return fmt.Errorf("%w: margin %v on %vx%v", ErrNoRoomToFit, margin, r.config.Width, r.config.Height)
	}
	verts := w.Vertices()
	if len(verts) == 0 {
		return nil
	}

	for i := 0; i < fitIterations; i++ {
		ratio, ok := r.fitRatio(vp, verts, availW, availH)
		if !ok {
			// Part of the scene is behind the camera: back off.
			ratio = 2
		} else if gomath.Abs(ratio-1) < fitTolerance {
			break
		}
		if err := vp.Zoom(ratio); err != nil {
			return err
		}
	}
	logger.Debug("zoomed to fit", zap.Float64("distance", vp.Distance()))
	return nil
}

// fitRatio returns how much larger the projected extent is than the
// available space, measured from the canvas center so the result stays
// centered on the target.
func (r *Renderer) fitRatio(vp *camera.ViewPoint3D, verts []math.Point3D, availW, availH float64) (float64, bool) {
	pr := r.Projector(vp)
	var maxX, maxY float64
	for _, v := range verts {
		p, ok := pr.Project(v)
		if !ok {
			return 0, false
		}
		maxX = gomath.Max(maxX, gomath.Abs(p.X-pr.cx))
		maxY = gomath.Max(maxY, gomath.Abs(p.Y-pr.cy))
	}
	ratio := gomath.Max(2*maxX/availW, 2*maxY/availH)
	if ratio == 0 {
		return 1, true
	}
	return ratio, true
}
