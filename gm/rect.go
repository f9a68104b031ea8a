package gm

import (
	"fmt"
	"image"
)

// Rect is an axis aligned rectangle. Min is the top left corner.
type Rect struct {
	Min, Max Vec
}

func RectWithOriginAndSize(origin, size Vec) Rect {
	return Rect{Min: origin, Max: origin.Add(size)}
}

func RectWithCenterAndSize(center, size Vec) Rect {
	half := size.Mul(0.5)
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

func (r Rect) Size() Vec {
	return r.Max.Sub(r.Min)
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

func (r Rect) Center() Vec {
	return r.Min.Add(r.Max).Mul(0.5)
}

// Contains reports whether the point lies within the rectangle. The min
// edges are inclusive, the max edges are not.
func (r Rect) Contains(p Vec) bool {
	return r.Min.X <= p.X && p.X < r.Max.X &&
		r.Min.Y <= p.Y && p.Y < r.Max.Y
}

func (r Rect) Translate(offset Vec) Rect {
	return Rect{Min: r.Min.Add(offset), Max: r.Max.Add(offset)}
}

// Inset shrinks the rectangle by the given amounts on each side. The result
// never has a negative size.
func (r Rect) Inset(left, top, right, bottom float64) Rect {
	inset := Rect{
		Min: Vec{X: r.Min.X + left, Y: r.Min.Y + top},
		Max: Vec{X: r.Max.X - right, Y: r.Max.Y - bottom},
	}

	inset.Max = inset.Max.Max(inset.Min)
	return inset
}

func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

func (r Rect) ToImageRectangle() image.Rectangle {
	return image.Rectangle{
		Min: r.Min.ToImagePoint(),
		Max: r.Max.ToImagePoint(),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(min=%s, max=%s)", r.Min, r.Max)
}
