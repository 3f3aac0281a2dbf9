// Package config handles renderer and demo configuration loading.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Config holds all settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Camera  CameraConfig  `yaml:"camera"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds canvas and projection settings.
type RenderConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	FocalLength  float64 `yaml:"focal_length"`
	Orthographic bool    `yaml:"orthographic"`
	NearPlane    float64 `yaml:"near_plane"`
	HitTesting   bool    `yaml:"hit_testing"`
	Outlines     bool    `yaml:"outlines"`
}

// CameraConfig holds the initial viewpoint. Angles are in radians.
type CameraConfig struct {
	Target          [3]float64 `yaml:"target,flow"`
	Azimuth         float64    `yaml:"azimuth"`
	Elevation       float64    `yaml:"elevation"`
	Distance        float64    `yaml:"distance"`
	Roll            float64    `yaml:"roll"`
	MinDistance     float64    `yaml:"min_distance"`
	DragSensitivity float64    `yaml:"drag_sensitivity"`
	ZoomSensitivity float64    `yaml:"zoom_sensitivity"`
	// FitMargin in pixels; when positive the demo zooms the camera to fit
	// the scene before rendering.
	FitMargin float64 `yaml:"fit_margin"`
}

// OutputConfig holds snapshot settings.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	Prefix     string `yaml:"prefix"`
	Background string `yaml:"background"` // SVG color name
	// OutlineDarken is how much darker outlines are than fills, 0 to 1.
	OutlineDarken float64 `yaml:"outline_darken"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:       1024,
			Height:      768,
			FocalLength: 1500,
			NearPlane:   0.01,
			HitTesting:  true,
			Outlines:    true,
		},
		Camera: CameraConfig{
			Azimuth:         -0.6,
			Elevation:       0.45,
			Distance:        20,
			MinDistance:     1e-6,
			DragSensitivity: 0.005,
			ZoomSensitivity: 0.1,
			FitMargin:       40,
		},
		Output: OutputConfig{
			Dir:           "snapshots",
			Prefix:        "scene",
			Background:    "white",
			OutlineDarken: 0.35,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the settings the renderer and camera cannot work without.
func (c *Config) Validate() error {
	var errs []error
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size must be positive, got %dx%d", c.Render.Width, c.Render.Height))
	}
	if !positive(c.Render.FocalLength) {
		errs = append(errs, fmt.Errorf("focal_length must be positive, got %v", c.Render.FocalLength))
	}
	if c.Render.NearPlane < 0 {
		errs = append(errs, fmt.Errorf("near_plane must not be negative, got %v", c.Render.NearPlane))
	}
	if !positive(c.Camera.Distance) {
		errs = append(errs, fmt.Errorf("camera distance must be positive, got %v", c.Camera.Distance))
	}
	if c.Output.OutlineDarken < 0 || c.Output.OutlineDarken > 1 {
		errs = append(errs, fmt.Errorf("outline_darken must be within [0, 1], got %v", c.Output.OutlineDarken))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
