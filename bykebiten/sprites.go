package bykebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/gm"
)

var _ = byke.ValidateComponent[Sprite]()
var _ = byke.ValidateComponent[Anchor]()

type Sprite struct {
	byke.ComparableComponent[Sprite]

	// The image to draw. Sprites without an image are skipped,
	// e.g. while the image is still loading.
	Image *ebiten.Image

	// Size of the sprite in world units. Defaults to the size of the image.
	CustomSize Optional[gm.Vec]

	// flips the sprite during rendering.
	FlipX, FlipY bool
}

func (Sprite) RequireComponents() []byke.ErasedComponent {
	return append([]byke.ErasedComponent{AnchorCenter}, commonRenderComponents...)
}

// Size returns the size of the sprite in world units.
func (s Sprite) Size() gm.Vec {
	if size, ok := s.CustomSize.Get(); ok {
		return size
	}

	if s.Image == nil {
		return gm.VecZero
	}

	return imageSizeOf(s.Image)
}

// localTransform maps image pixels into the local space of the sprite.
func (s Sprite) localTransform(anchor Anchor) gm.Affine {
	sourceSize := imageSizeOf(s.Image)
	scale := s.Size().DivEach(sourceSize)

	if s.FlipX {
		scale.X *= -1
	}

	if s.FlipY {
		scale.Y *= -1
	}

	return gm.IdentityAffine().
		Scale(scale).
		Translate(anchor.MulEach(sourceSize).Mul(-1))
}

// Anchor is the point of a sprite that is placed at its translation,
// relative to the size of the sprite.
type Anchor struct {
	byke.ComparableComponent[Anchor]
	gm.Vec
}

var (
	AnchorTopLeft      = Anchor{Vec: gm.Vec{}}
	AnchorTopCenter    = Anchor{Vec: gm.Vec{X: 0.5}}
	AnchorTopRight     = Anchor{Vec: gm.Vec{X: 1.0}}
	AnchorCenterLeft   = Anchor{Vec: gm.Vec{X: 0, Y: 0.5}}
	AnchorCenter       = Anchor{Vec: gm.Vec{X: 0.5, Y: 0.5}}
	AnchorCenterRight  = Anchor{Vec: gm.Vec{X: 1.0, Y: 0.5}}
	AnchorBottomLeft   = Anchor{Vec: gm.Vec{Y: 1.0}}
	AnchorBottomCenter = Anchor{Vec: gm.Vec{X: 0.5, Y: 1.0}}
	AnchorBottomRight  = Anchor{Vec: gm.Vec{X: 1.0, Y: 1.0}}
)
