package config

import "flag"

// Flags are the command-line overrides applied on top of the config file.
type Flags struct {
	ConfigPath string
	Debug      bool
	Width      int
	Height     int
	Ortho      bool
	OutDir     string
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Canvas width")
	fs.IntVar(&f.Height, "height", 0, "Canvas height")
	fs.BoolVar(&f.Ortho, "ortho", false, "Use orthographic projection")
	fs.StringVar(&f.OutDir, "out", "", "Snapshot output directory")
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Render.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Render.Height = f.Height
	}
	if f.Ortho {
		cfg.Render.Orthographic = true
	}
	if f.OutDir != "" {
		cfg.Output.Dir = f.OutDir
	}
}
