package render

import (
	"image/color"
	"math"
)

// Color is an alias for color.RGBA. Blocky colors are always opaque.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack    = color.RGBA{0, 0, 0, 255}
	ColorWhite    = color.RGBA{255, 255, 255, 255}
	ColorRed      = color.RGBA{255, 0, 0, 255}
	ColorGreen    = color.RGBA{0, 255, 0, 255}
	ColorBlue     = color.RGBA{0, 0, 255, 255}
	ColorGrid     = color.RGBA{50, 50, 50, 255}
	ColorTrack    = color.RGBA{200, 200, 200, 255}
	ColorKnob     = color.RGBA{100, 100, 255, 255}
	ColorShadow   = ColorBlack
	ColorBackdrop = ColorBlack
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// Lerp blends c1 toward c2 by t, channel by channel, rounding to the nearest
// integer. t is expected in [0, 1]; values outside extrapolate but saturate at
// 0 and 255 instead of wrapping.
func Lerp(c1, c2 Color, t float64) Color {
	return Color{
		R: saturate(float64(c1.R)*(1-t) + float64(c2.R)*t),
		G: saturate(float64(c1.G)*(1-t) + float64(c2.G)*t),
		B: saturate(float64(c1.B)*(1-t) + float64(c2.B)*t),
		A: 255,
	}
}

// Darken scales every channel of c by factor (expected in [0, 1]).
func Darken(c Color, factor float64) Color {
	return Color{
		R: saturate(float64(c.R) * factor),
		G: saturate(float64(c.G) * factor),
		B: saturate(float64(c.B) * factor),
		A: 255,
	}
}

// ShadowFactor maps a model-space depth to a darkening factor in [0, 1].
// Points at z >= 0 keep their color; points behind the axis fade to black.
func ShadowFactor(z float64) float64 {
	return clamp01(1 + z)
}

// saturate rounds v and clamps it to a color channel.
func saturate(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func lerpFloat(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
