// scene3d renders demo scenes to PNG and runs hit-test queries against them.
package main

import (
	"flag"
	"fmt"
	gomath "math"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/chart3d/internal/config"
	"github.com/Faultbox/chart3d/internal/engine/camera"
	"github.com/Faultbox/chart3d/internal/engine/canvas"
	"github.com/Faultbox/chart3d/internal/engine/model"
	"github.com/Faultbox/chart3d/internal/engine/renderer"
	"github.com/Faultbox/chart3d/internal/logger"
	"github.com/Faultbox/chart3d/internal/scenes"
	"github.com/Faultbox/chart3d/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "cube", "bars", "tetra":
		err = cmdRender(command, args)
	case "render":
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "Usage: scene3d render <scene> [options]")
			os.Exit(1)
		}
		err = cmdRender(args[0], args[1:])
	case "hit":
		err = cmdHit(args)
	case "list", "ls":
		for _, name := range scenes.Names() {
			fmt.Println(name)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scene3d - software 3D scene renderer

Usage:
  scene3d <command> [options]

Commands:
  cube                         Render the demo cube to PNG
  bars                         Render the demo bar chart to PNG
  render <scene>               Render any scene listed by "list"
  hit <scene> <x> <y> [...]    Print the elements under canvas points
  list                         List demo scenes

Options:
  -config <file>   Config file (default ./chart3d.yaml or user config dir)
  -debug           Debug logging
  -width, -height  Canvas size in pixels
  -ortho           Orthographic projection
  -out <dir>       Snapshot directory
  -azimuth, -elevation, -distance
                   Override the camera (radians, world units)

Examples:
  scene3d cube -width 640 -height 480
  scene3d bars -ortho -out ./frames
  scene3d hit bars 512 384 100 100`)
}

// session holds what every subcommand needs to render one scene.
type session struct {
	cfg      *config.Config
	world    *model.World
	renderer *renderer.Renderer
	view     *camera.ViewPoint3D
}

// cameraFlags override the configured viewpoint; NaN means unset.
type cameraFlags struct {
	azimuth, elevation, distance float64
}

func (c *cameraFlags) register(fs *flag.FlagSet) {
	fs.Float64Var(&c.azimuth, "azimuth", gomath.NaN(), "Camera azimuth in radians")
	fs.Float64Var(&c.elevation, "elevation", gomath.NaN(), "Camera elevation in radians")
	fs.Float64Var(&c.distance, "distance", gomath.NaN(), "Camera distance; disables zoom to fit")
}

func newSession(sceneName string, flags *config.Flags, cam cameraFlags) (*session, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	world, err := scenes.Build(sceneName)
	if err != nil {
		return nil, err
	}

	r, err := renderer.New(renderer.Config{
		Width:  float64(cfg.Render.Width),
		Height: float64(cfg.Render.Height),
		Projection: renderer.Projection{
			FocalLength:  cfg.Render.FocalLength,
			Orthographic: cfg.Render.Orthographic,
			NearPlane:    cfg.Render.NearPlane,
		},
		HitTesting: cfg.Render.HitTesting,
		Outlines:   cfg.Render.Outlines,
	})
	if err != nil {
		return nil, err
	}

	c := cfg.Camera
	fit := c.FitMargin > 0
	if !gomath.IsNaN(cam.azimuth) {
		c.Azimuth = cam.azimuth
	}
	if !gomath.IsNaN(cam.elevation) {
		c.Elevation = cam.elevation
	}
	if !gomath.IsNaN(cam.distance) {
		c.Distance = cam.distance
		fit = false
	}
	vp, err := camera.New(math.Pt(c.Target[0], c.Target[1], c.Target[2]), c.Azimuth, c.Elevation, c.Distance)
	if err != nil {
		return nil, err
	}
	vp.Roll(c.Roll)
	vp.MinDistance = c.MinDistance
	vp.DragSensitivity = c.DragSensitivity
	vp.ZoomSensitivity = c.ZoomSensitivity

	if fit {
		if err := r.ZoomToFit(world, vp, c.FitMargin); err != nil {
			return nil, err
		}
	}

	logger.Info("scene loaded",
		zap.String("scene", sceneName),
		zap.Int("objects", world.ObjectCount()),
		zap.Int("faces", world.FaceCount()),
		zap.Float64("distance", vp.Distance()),
	)
	return &session{cfg: cfg, world: world, renderer: r, view: vp}, nil
}

func cmdRender(sceneName string, args []string) error {
	fs := flag.NewFlagSet(sceneName, flag.ExitOnError)
	var flags config.Flags
	var cam cameraFlags
	flags.Register(fs)
	cam.register(fs)
	fs.Parse(args)

	s, err := newSession(sceneName, &flags, cam)
	if err != nil {
		return err
	}

	frame, err := s.renderer.Render(s.world, s.view)
	if err != nil {
		return err
	}

	bg, err := canvas.Named(s.cfg.Output.Background)
	if err != nil {
		return err
	}
	c := canvas.New(s.cfg.Render.Width, s.cfg.Render.Height, bg)
	c.OutlineShade = s.cfg.Output.OutlineDarken
	frame.Paint(c)

	snap := canvas.NewSnapshotter(s.cfg.Output.Dir, s.cfg.Output.Prefix+"_"+sceneName)
	path, err := snap.Save(c.Image())
	if err != nil {
		return err
	}

	fmt.Printf("Scene:   %s\n", sceneName)
	fmt.Printf("Faces:   %d painted, %d culled, %d clipped\n", len(frame.Ops), frame.Culled, frame.Clipped)
	if b, ok := frame.Bounds(); ok {
		fmt.Printf("Bounds:  (%.1f, %.1f) - (%.1f, %.1f)\n", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	}
	fmt.Printf("Written: %s\n", path)
	return nil
}

func cmdHit(args []string) error {
	fs := flag.NewFlagSet("hit", flag.ExitOnError)
	var flags config.Flags
	var cam cameraFlags
	flags.Register(fs)
	cam.register(fs)
	all := fs.Bool("all", false, "List every element under each point, topmost first")
	fs.Parse(args)

	if fs.NArg() < 3 || (fs.NArg()-1)%2 != 0 {
		return fmt.Errorf("usage: scene3d hit [options] <scene> <x> <y> [<x> <y> ...]")
	}
	sceneName := fs.Arg(0)
	points, err := parsePoints(fs.Args()[1:])
	if err != nil {
		return err
	}

	s, err := newSession(sceneName, &flags, cam)
	if err != nil {
		return err
	}
	frame, err := s.renderer.Render(s.world, s.view)
	if err != nil {
		return err
	}
	if frame.Info == nil {
		return fmt.Errorf("hit testing is disabled in the config")
	}

	for _, p := range points {
		if *all {
			hits := frame.Info.ElementsAt(p.X, p.Y)
			fmt.Printf("(%g, %g): %d element(s)\n", p.X, p.Y, len(hits))
			for _, e := range hits {
				fmt.Printf("  %-14s %s\n", e.Kind, scenes.Describe(e.Tag))
			}
			continue
		}
		e, ok := frame.Info.FindElementAt(p.X, p.Y)
		if !ok {
			fmt.Printf("(%g, %g): nothing\n", p.X, p.Y)
			continue
		}
		fmt.Printf("(%g, %g): %s %s\n", p.X, p.Y, e.Kind, scenes.Describe(e.Tag))
	}
	return nil
}

func parsePoints(args []string) ([]math.Vec2, error) {
	pts := make([]math.Vec2, 0, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("bad x coordinate %q: %w", args[i], err)
		}
		y, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad y coordinate %q: %w", args[i+1], err)
		}
		pts = append(pts, math.Vec2{X: x, Y: y})
	}
	return pts, nil
}
