// Package scenes builds the demo worlds rendered by cmd/scene3d.
package scenes

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/Faultbox/chart3d/internal/engine/canvas"
	"github.com/Faultbox/chart3d/internal/engine/model"
	"github.com/Faultbox/chart3d/internal/engine/picking"
	"github.com/Faultbox/chart3d/pkg/math"
)

var (
	ErrUnknownScene = errors.New("unknown scene")
	ErrNoValues     = errors.New("bar grid needs at least one value")
)

// FaceTag names one face of the demo cube.
type FaceTag string

// Cube face tags, in the order CreateBox emits the faces.
var CubeFaces = []FaceTag{"front", "back", "right", "left", "top", "bottom"}

// BarTag identifies one bar of a bar grid.
type BarTag struct {
	Row    int
	Column int
	Value  float64
}

func (b BarTag) String() string {
	return fmt.Sprintf("bar[%d,%d]=%g", b.Row, b.Column, b.Value)
}

// SectionTag marks background geometry such as the floor of a chart.
type SectionTag string

// ElementKind indexes sections apart from data items.
func (SectionTag) ElementKind() picking.ElementKind { return picking.Section }

// Cube returns a world holding one cube of the given edge centered at the
// origin, turned by spin radians about the vertical axis. Each face has its
// own color and a FaceTag.
func Cube(edge, spin float64) (*model.World, error) {
	box := model.CreateBox(math.Origin, edge, edge, edge, colornames.Steelblue, nil)
	palette := canvas.Palette(len(CubeFaces))
	for i, f := range box.Faces() {
		f.Tag = CubeFaces[i]
		f.Color = palette[i]
		f.Outline = true
	}
	box.SetProperty(model.PropKey, "cube")

	if spin != 0 {
		rot, err := math.NewRotate3D(math.Origin, math.UnitY, spin)
		if err != nil {
			return nil, err
		}
		box = box.Transformed(rot)
	}

	w := model.NewWorld()
	if err := w.Add(box); err != nil {
		return nil, err
	}
	return w, nil
}

// BarGridOptions controls the layout of a bar grid.
type BarGridOptions struct {
	// Spacing is the distance between bar centers.
	Spacing float64
	// Width is the bar footprint edge, at most Spacing.
	Width float64
	// HeightScale maps a value to a bar height.
	HeightScale float64
	// Floor adds a sheet under the bars that is always painted first.
	Floor bool
}

// DefaultBarGridOptions returns the layout used by the demo.
func DefaultBarGridOptions() BarGridOptions {
	return BarGridOptions{
		Spacing:     2,
		Width:       1.4,
		HeightScale: 1,
		Floor:       true,
	}
}

// BarGrid builds a 3D bar chart: values[row][column] becomes a box standing
// on the y = 0 plane. Rows run along Z and columns along X, centered on the
// origin. Each row is one series and gets its own color. Bars are tagged
// with BarTag and carry row, column and series properties.
func BarGrid(values [][]float64, opts BarGridOptions) (*model.World, error) {
	rows := len(values)
	cols := 0
	for _, r := range values {
		cols = max(cols, len(r))
	}
	if rows == 0 || cols == 0 {
		return nil, ErrNoValues
	}

	palette := canvas.Palette(rows)
	w := model.NewWorld()

	if opts.Floor {
		size := float64(max(rows, cols)) * opts.Spacing
		floor := model.CreateYSheet(math.Origin, size, colornames.Whitesmoke, SectionTag("floor"))
		f := floor.Faces()[0]
		f.Depth = model.AlwaysBehind()
		f.Outline = true
		if err := w.Add(floor); err != nil {
			return nil, err
		}
	}

	x0 := -float64(cols-1) / 2 * opts.Spacing
	z0 := -float64(rows-1) / 2 * opts.Spacing
	for r, row := range values {
		for c, v := range row {
			h := v * opts.HeightScale
			if h == 0 {
				continue
			}
			center := math.Pt(x0+float64(c)*opts.Spacing, h/2, z0+float64(r)*opts.Spacing)
			bar := model.CreateBox(center, opts.Width, abs(h), opts.Width, palette[r], BarTag{Row: r, Column: c, Value: v})
			for _, f := range bar.Faces() {
				f.Outline = true
			}
			bar.SetProperty(model.PropRow, r)
			bar.SetProperty(model.PropColumn, c)
			bar.SetProperty(model.PropSeries, fmt.Sprintf("series %d", r+1))
			if err := w.Add(bar); err != nil {
				return nil, err
			}
		}
	}
	return w, nil
}

// SampleValues is the data set of the bars demo.
func SampleValues() [][]float64 {
	return [][]float64{
		{3, 5, 2, 6, 4},
		{4, 2, 5, 3, 1},
		{1, 4, 3, 2, 5},
		{2, 3, 1, 4, 2},
	}
}

// builders maps scene names to constructors for the CLI.
var builders = map[string]func() (*model.World, error){
	"cube": func() (*model.World, error) { return Cube(4, 0.5) },
	"bars": func() (*model.World, error) { return BarGrid(SampleValues(), DefaultBarGridOptions()) },
	"tetra": func() (*model.World, error) {
		w := model.NewWorld()
		err := w.Add(model.CreateTetrahedron(math.Origin, 4, colornames.Indianred, "tetrahedron"))
		return w, err
	},
}

// Names returns the registered scene names, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for n := range builders {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Build returns the named scene.
func Build(name string) (*model.World, error) {
	b, ok := builders[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return b()
}

// Describe returns a short human-readable label for a face tag.
func Describe(tag any) string {
	switch t := tag.(type) {
	case nil:
		return "(untagged)"
	case fmt.Stringer:
		return t.String()
	case FaceTag:
		return string(t) + " face"
	case SectionTag:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

// ColorOf returns the color of the first face whose tag equals tag.
func ColorOf(w *model.World, tag any) (color.RGBA, bool) {
	for _, f := range w.Faces() {
		if f.Tag == tag {
			return f.Color, true
		}
	}
	return color.RGBA{}, false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
