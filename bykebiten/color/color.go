// Package color provides a float based color type. Component values are
// not limited to one, which allows for HDR colors that drive effects like bloom.
package color

import (
	"fmt"
	"math"
)

var White = RGB(1, 1, 1)
var Black = RGB(0, 0, 0)
var Transparent = RGBA(0, 0, 0, 0)

// Color is a non alpha pre-multiplied color value in linear space.
// A value of 1 indicates full color, values above 1 are valid for HDR rendering.
type Color struct {
	R, G, B, A float32
}

func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func RGB(r, g, b float32) Color {
	return RGBA(r, g, b, 1.0)
}

// RGB8 builds a color from 8 bit channel values.
func RGB8(r, g, b uint8) Color {
	return RGB(float32(r)/255, float32(g)/255, float32(b)/255)
}

func Gray(g float32) Color {
	return RGB(g, g, g)
}

func (c Color) WithAlpha(a float32) Color {
	c.A = a
	return c
}

// Scale multiplies the color channels by the given factor. Alpha is not modified.
func (c Color) Scale(factor float32) Color {
	c.R *= factor
	c.G *= factor
	c.B *= factor
	return c
}

// MaxChannel returns the largest of the color channels.
func (c Color) MaxChannel() float32 {
	return max(c.R, c.G, c.B)
}

// IsHDR reports whether any channel exceeds the displayable range.
func (c Color) IsHDR() bool {
	return c.MaxChannel() > 1
}

// RGBA implements color.Color. HDR values are clamped.
func (c Color) RGBA() (r, g, b, a uint32) {
	const MAX = 0xffff

	r = uint32(clamp(c.R*c.A*MAX, 0, MAX))
	g = uint32(clamp(c.G*c.A*MAX, 0, MAX))
	b = uint32(clamp(c.B*c.A*MAX, 0, MAX))
	a = uint32(clamp(c.A*MAX, 0, MAX))

	return
}

func (c Color) PremultipliedValues() (float32, float32, float32, float32) {
	return c.R * c.A, c.G * c.A, c.B * c.A, c.A
}

// Values returns the straight (non pre-multiplied) channel values.
func (c Color) Values() (float32, float32, float32, float32) {
	return c.R, c.G, c.B, c.A
}

func (c Color) String() string {
	if c.A == 1 {
		return fmt.Sprintf("rgb(%s, %s, %s)", formatChannel(c.R), formatChannel(c.G), formatChannel(c.B))
	}

	return fmt.Sprintf("rgba(%s, %s, %s, %s)", formatChannel(c.R), formatChannel(c.G), formatChannel(c.B), formatChannel(c.A))
}

func formatChannel(value float32) string {
	return fmt.Sprintf("%g", math.Round(float64(value)*1000)/1000)
}

func clamp[T float32 | float64](value, min, max T) T {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}
