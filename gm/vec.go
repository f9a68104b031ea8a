package gm

import (
	"fmt"
	"image"
	"math"
)

// Vec is a 2d vector. The y axis points down, as it does on screen.
type Vec struct {
	X, Y float64
}

var (
	VecZero = Vec{}
	VecOne  = Vec{X: 1, Y: 1}
)

// VecSplat returns a vector with both components set to value.
func VecSplat(value float64) Vec {
	return Vec{X: value, Y: value}
}

// VecFromAngle returns the unit vector pointing in the direction of the given angle.
func VecFromAngle(angle Rad) Vec {
	sin, cos := math.Sincos(float64(angle))
	return Vec{X: cos, Y: sin}
}

func (v Vec) Add(other Vec) Vec {
	return Vec{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec) Sub(other Vec) Vec {
	return Vec{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul scales both components by the given factor.
func (v Vec) Mul(factor float64) Vec {
	return Vec{X: v.X * factor, Y: v.Y * factor}
}

func (v Vec) MulEach(other Vec) Vec {
	return Vec{X: v.X * other.X, Y: v.Y * other.Y}
}

func (v Vec) DivEach(other Vec) Vec {
	return Vec{X: v.X / other.X, Y: v.Y / other.Y}
}

func (v Vec) Dot(other Vec) float64 {
	return v.X*other.X + v.Y*other.Y
}

func (v Vec) LengthSqr() float64 {
	return v.Dot(v)
}

func (v Vec) Length() float64 {
	return math.Sqrt(v.LengthSqr())
}

// Normalized returns the vector scaled to a length of one. The zero vector
// is returned as is.
func (v Vec) Normalized() Vec {
	length := v.Length()
	if length == 0 {
		return v
	}

	return v.Mul(1 / length)
}

// Lerp interpolates linearly between v and other.
func (v Vec) Lerp(other Vec, t float64) Vec {
	return v.Add(other.Sub(v).Mul(t))
}

func (v Vec) Min(other Vec) Vec {
	return Vec{X: min(v.X, other.X), Y: min(v.Y, other.Y)}
}

func (v Vec) Max(other Vec) Vec {
	return Vec{X: max(v.X, other.X), Y: max(v.Y, other.Y)}
}

// XY returns both components, e.g. to pass them to ebiten.GeoM.
func (v Vec) XY() (float64, float64) {
	return v.X, v.Y
}

func (v Vec) ToImagePoint() image.Point {
	return image.Point{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))}
}

func (v Vec) String() string {
	return fmt.Sprintf("Vec(%g, %g)", v.X, v.Y)
}
