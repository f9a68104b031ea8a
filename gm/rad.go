package gm

import "math"

// Rad is an angle in radians.
type Rad float64

func DegToRad(deg float64) Rad {
	return Rad(deg * math.Pi / 180)
}

func (r Rad) Degrees() float64 {
	return float64(r) * 180 / math.Pi
}

// Normalized returns the angle in the range [-π, π)
func (r Rad) Normalized() Rad {
	angle := math.Mod(float64(r)+math.Pi, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}

	return Rad(angle - math.Pi)
}
