package canvas

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Background is the canvas color used when none is named.
var Background = colornames.White

// Named returns the SVG color with the given name, ignoring case. An empty
// name selects Background.
func Named(name string) (color.RGBA, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Background, nil
	}
	c, ok := colornames.Map[name]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

// Darken returns c moved toward black by factor (0 to 1) in Lab space,
// keeping its alpha.
func Darken(c color.Color, factor float64) color.RGBA {
	return blend(c, colorful.Color{}, factor)
}

// Lighten returns c moved toward white by factor (0 to 1) in Lab space,
// keeping its alpha.
func Lighten(c color.Color, factor float64) color.RGBA {
	return blend(c, colorful.Color{R: 1, G: 1, B: 1}, factor)
}

// WithAlpha returns c with a different alpha value.
func WithAlpha(c color.Color, a uint8) color.RGBA {
	cf, _ := colorful.MakeColor(opaque(c))
	return toRGBA(cf, a)
}

// Palette returns n evenly spaced hues of equal lightness and chroma, so
// series are told apart by hue alone. The result is deterministic.
func Palette(n int) []color.RGBA {
	out := make([]color.RGBA, n)
	for i := range out {
		h := 360 * float64(i) / float64(max(n, 1))
		out[i] = toRGBA(colorful.Hcl(h+30, 0.55, 0.65), 255)
	}
	return out
}

func blend(c color.Color, to colorful.Color, factor float64) color.RGBA {
	_, _, _, a := c.RGBA()
	cf, _ := colorful.MakeColor(opaque(c))
	return toRGBA(cf.BlendLab(to, factor), uint8(a>>8))
}

// opaque drops the alpha so MakeColor sees straight RGB values.
func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}

func toRGBA(c colorful.Color, a uint8) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	// color.RGBA is alpha-premultiplied.
	return color.RGBA{
		R: uint8(uint16(r) * uint16(a) / 255),
		G: uint8(uint16(g) * uint16(a) / 255),
		B: uint8(uint16(b) * uint16(a) / 255),
		A: a,
	}
}
