package bykebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/glowmenu/gm"
)

func imageSizeOf(image *ebiten.Image) gm.Vec {
	return gm.Vec{
		X: float64(image.Bounds().Dx()),
		Y: float64(image.Bounds().Dy()),
	}
}

// geoMOf converts an affine transform into the matrix type used by ebiten.
func geoMOf(tr gm.Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, tr.Matrix.A)
	g.SetElement(0, 1, tr.Matrix.B)
	g.SetElement(0, 2, tr.Translation.X)
	g.SetElement(1, 0, tr.Matrix.C)
	g.SetElement(1, 1, tr.Matrix.D)
	g.SetElement(1, 2, tr.Translation.Y)
	return g
}
