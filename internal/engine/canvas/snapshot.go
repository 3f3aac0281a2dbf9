package canvas

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Snapshotter writes canvas images to PNG files.
type Snapshotter struct {
	outputDir string
	prefix    string
}

// NewSnapshotter creates a snapshot writer for dir. Files are named
// prefix_<timestamp>.png.
func NewSnapshotter(outputDir, prefix string) *Snapshotter {
	return &Snapshotter{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// Save writes img under a generated name and returns the path.
func (s *Snapshotter) Save(img image.Image) (string, error) {
	path := s.GenerateFilename()
	if err := SavePNG(path, img); err != nil {
		return "", err
	}
	return path, nil
}

// GenerateFilename returns the next snapshot path without writing it.
func (s *Snapshotter) GenerateFilename() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05.000")
	filename := fmt.Sprintf("%s_%s.png", s.prefix, timestamp)
	if s.outputDir != "" {
		filename = filepath.Join(s.outputDir, filename)
	}
	return filename
}

// SavePNG encodes img to path, creating parent directories as needed.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return file.Close()
}
