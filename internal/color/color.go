// Package color implements linear RGB colors: the arithmetic the shading and
// tracing code needs, plus the clamp-to-unit step applied before an image is
// written out.
package color

import "fmt"

// Color is a linear RGB triple. Components may exceed 1.0 before Clamp is
// applied; they are never negative in a well-formed scene.
type Color struct {
	R, G, B float64
}

func (c Color) String() string {
	return fmt.Sprintf("Color(%.4f, %.4f, %.4f)", c.R, c.G, c.B)
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Mul multiplies two colors componentwise (used to tint a light's
// contribution by the surface's object color).
func (c Color) Mul(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Clamp limits each component to [0, 1].
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
