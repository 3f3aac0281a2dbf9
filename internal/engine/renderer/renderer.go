// Package renderer projects a World through a ViewPoint3D onto a 2D canvas,
// producing depth-ordered paint operations and a hit-test index.
package renderer

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/chart3d/internal/engine/camera"
	"github.com/Faultbox/chart3d/internal/engine/model"
	"github.com/Faultbox/chart3d/internal/engine/picking"
	"github.com/Faultbox/chart3d/internal/logger"
	"github.com/Faultbox/chart3d/pkg/math"
)

var (
	ErrInvalidCanvas = errors.New("canvas size must not be negative")
	ErrNoRoomToFit   = errors.New("margin leaves no room on the canvas")
)

// Config holds renderer configuration.
type Config struct {
	Width      float64
	Height     float64
	Projection Projection
	// HitTesting builds a RenderingInfo with every render.
	HitTesting bool
	// Outlines forces an outline on every painted face.
	Outlines bool
}

// Renderer turns a World and a ViewPoint3D into a Frame. It keeps no state
// between renders besides its configuration and is not safe for concurrent
// use while the scene is being mutated.
type Renderer struct {
	config Config
}

// New creates a new renderer.
func New(cfg Config) (*Renderer, error) {
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidCanvas, cfg.Width, cfg.Height)
	}
	if cfg.Projection.FocalLength <= 0 {
		return nil, fmt.Errorf("focal length must be positive, got %v", cfg.Projection.FocalLength)
	}
	if cfg.Projection.NearPlane <= 0 {
		cfg.Projection.NearPlane = DefaultProjection().NearPlane
	}
	logger.Debug("renderer created",
		zap.Float64("width", cfg.Width),
		zap.Float64("height", cfg.Height),
		zap.Float64("focal_length", cfg.Projection.FocalLength),
		zap.Bool("orthographic", cfg.Projection.Orthographic),
	)
	return &Renderer{config: cfg}, nil
}

// Config returns the current configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// Resize changes the canvas size.
func (r *Renderer) Resize(width, height float64) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidCanvas, width, height)
	}
	r.config.Width = width
	r.config.Height = height
	logger.Debug("renderer resized",
		zap.Float64("width", width),
		zap.Float64("height", height),
	)
	return nil
}

// Projector returns the projector for vp at the current canvas size.
func (r *Renderer) Projector(vp *camera.ViewPoint3D) *Projector {
	return NewProjector(vp, r.config.Projection, r.config.Width, r.config.Height)
}

// sortEntry is a face waiting to be painted.
type sortEntry struct {
	face  *model.Face
	depth float64
	cam   []math.Point3D
}

// Render draws w as seen from vp.
//
// Faces are painted farthest first; faces at equal depth keep their World
// order. Back faces, faces with no area on screen and faces entirely behind
// the near plane are skipped; faces crossing the near plane are clipped to
// it. A face that references a vertex outside the world buffer aborts the
// render with ErrVertexIndexOutOfRange.
func (r *Renderer) Render(w *model.World, vp *camera.ViewPoint3D) (*Frame, error) {
	start := time.Now()
	pr := r.Projector(vp)
	frame := &Frame{
		Width:     r.config.Width,
		Height:    r.config.Height,
		Projector: pr,
	}
	if r.config.HitTesting {
		frame.Info = picking.New()
	}
	if r.config.Width == 0 || r.config.Height == 0 {
		return frame, nil
	}

	verts := w.Vertices()
	cam := make([]math.Point3D, len(verts))
	for i, v := range verts {
		cam[i] = pr.ToCamera(v)
	}

	faces := w.Faces()
	entries := make([]sortEntry, 0, len(faces))
	for i, f := range faces {
		pts, err := f.Resolve(cam, nil)
		if err != nil {
			logger.Error("render aborted: invalid face",
				zap.Int("face", i),
				zap.Int("offset", f.Offset()),
				zap.Error(err),
			)
			return nil, fmt.Errorf("rendering face %d: %w", i, err)
		}
		depth, err := f.Depth.Depth(pts)
		if err != nil {
			logger.Error("render aborted: invalid depth rule",
				zap.Int("face", i),
				zap.Error(err),
			)
			return nil, fmt.Errorf("rendering face %d: %w", i, err)
		}
		entries = append(entries, sortEntry{face: f, depth: depth, cam: pts})
	}

	// Farthest first. The sort is stable so equal depths keep World order.
	slices.SortStableFunc(entries, func(a, b sortEntry) int {
		return cmp.Compare(b.depth, a.depth)
	})

	near := r.config.Projection.NearPlane
	var clipBuf []math.Point3D
	for _, e := range entries {
		clipBuf = clipNear(e.cam, near, clipBuf[:0])
		if len(clipBuf) < 3 {
			frame.Clipped++
			continue
		}
		poly := make([]math.Vec2, len(clipBuf))
		for j, c := range clipBuf {
			poly[j] = pr.project(c)
		}

		area := math.SignedArea2(poly)
		if area == 0 || (area > 0 && !e.face.DoubleSided) {
			frame.Culled++
			continue
		}

		frame.Ops = append(frame.Ops, PaintOp{
			Polygon: poly,
			Fill:    e.face.Color,
			Outline: e.face.Outline || r.config.Outlines,
			Tag:     e.face.Tag,
			Depth:   e.depth,
		})
		if frame.Info != nil {
			frame.Info.AddProjected(poly, picking.KindOf(e.face.Tag), e.face.Tag)
		}
	}

	logger.Debug("frame rendered",
		zap.Int("faces", len(faces)),
		zap.Int("painted", len(frame.Ops)),
		zap.Int("culled", frame.Culled),
		zap.Int("clipped", frame.Clipped),
		zap.Duration("elapsed", time.Since(start)),
	)
	return frame, nil
}
