package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/vusic/internal/engine"
)

// MaterialColor converts a material to a non-premultiplied RGBA with the
// material's opacity as alpha.
func MaterialColor(m engine.Material) color.NRGBA {
	r, g, b := colorful.Hsl(m.Hue*360, clamp01(m.Saturation), clamp01(m.Lightness)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(m.Opacity)*255 + 0.5)}
}

// Scale multiplies the color channels by k in [0,1], keeping alpha.
func Scale(c color.NRGBA, k float64) color.NRGBA {
	k = clamp01(k)
	return color.NRGBA{
		R: uint8(float64(c.R)*k + 0.5),
		G: uint8(float64(c.G)*k + 0.5),
		B: uint8(float64(c.B)*k + 0.5),
		A: c.A,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
