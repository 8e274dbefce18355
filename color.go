package fitview

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

type Color struct {
	R, G, B, A float64
}

func Gray(x float64) Color {
	return Color{x, x, x, 1}
}

// HexColor parses "rgb", "rrggbb" or "rrggbbaa", with or without a leading
// '#'. Invalid input yields an error.
func HexColor(x string) (Color, error) {
	x = strings.TrimPrefix(x, "#")
	var r, g, b, a int
	a = 255
	var err error
	switch len(x) {
	case 3:
		_, err = fmt.Sscanf(x, "%1x%1x%1x", &r, &g, &b)
		r, g, b = r*17, g*17, b*17
	case 6:
		_, err = fmt.Sscanf(x, "%02x%02x%02x", &r, &g, &b)
	case 8:
		_, err = fmt.Sscanf(x, "%02x%02x%02x%02x", &r, &g, &b, &a)
	default:
		err = fmt.Errorf("bad length %d", len(x))
	}
	if err != nil {
		return Color{}, fmt.Errorf("parse hex color %q: %w", x, err)
	}
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}, nil
}

func (c Color) NRGBA() color.NRGBA {
	const d = 0xff
	r := clamp01(c.R)
	g := clamp01(c.G)
	b := clamp01(c.B)
	a := clamp01(c.A)
	return color.NRGBA{uint8(r * d), uint8(g * d), uint8(b * d), uint8(a * d)}
}

func (c Color) Add(b Color) Color {
	return Color{c.R + b.R, c.G + b.G, c.B + b.B, c.A + b.A}
}

func (c Color) Mul(b Color) Color {
	return Color{c.R * b.R, c.G * b.G, c.B * b.B, c.A * b.A}
}

func (c Color) MulScalar(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f, c.A * f}
}

func (c Color) Min(b Color) Color {
	return Color{math.Min(c.R, b.R), math.Min(c.G, b.G), math.Min(c.B, b.B), math.Min(c.A, b.A)}
}

func (c Color) Alpha(a float64) Color {
	return Color{c.R, c.G, c.B, a}
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
