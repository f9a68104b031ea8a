package bykebiten

import (
	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/bykebiten/color"
	"github.com/oliverbestmann/glowmenu/gm"
)

var _ = byke.ValidateComponent[Camera]()
var _ = byke.ValidateComponent[OrthographicProjection]()

// DefaultClearColor is used by cameras that do not define a ClearColor.
var DefaultClearColor = color.RGB8(43, 44, 47)

type Camera struct {
	byke.ComparableComponent[Camera]

	// Inactive marks the camera as not active - it will not render.
	Inactive bool

	// The clear color. If nil, DefaultClearColor is used.
	ClearColor *color.Color

	// Cameras are rendered by ascending order value
	Order int

	// HDR renders into an offscreen target that keeps colors above one. This is
	// required for Bloom. The Tonemapping of the camera maps the result back to the screen.
	HDR bool
}

func (c Camera) RequireComponents() []byke.ErasedComponent {
	return []byke.ErasedComponent{
		NewTransform(),
		Tonemapping{},
		OrthographicProjection{
			ViewportOrigin: gm.Vec{X: 0.5, Y: 0.5},
			ScalingMode:    ScalingModeWindowSize{},
			Scale:          1,
		},
	}
}

func (c Camera) clearColor() color.Color {
	if c.ClearColor == nil {
		return DefaultClearColor
	}

	return *c.ClearColor
}

type OrthographicProjection struct {
	byke.ComparableComponent[OrthographicProjection]

	// Origin of the camera. Set this to (0.5, 0.5) to center the Camera.
	ViewportOrigin gm.Vec

	ScalingMode ScalingMode

	// Extra scale to multiply on top of the ScalingMode. Can be used for zooming.
	Scale float64
}

type ScalingMode interface {
	ViewportSize(width, height float64) gm.Vec
}

// ScalingModeWindowSize maps one world unit to one pixel.
type ScalingModeWindowSize struct{}

func (s ScalingModeWindowSize) ViewportSize(width, height float64) gm.Vec {
	return gm.Vec{X: width, Y: height}
}

// ScalingModeFixedVertical keeps the visible height constant.
type ScalingModeFixedVertical struct {
	ViewportHeight float64
}

func (s ScalingModeFixedVertical) ViewportSize(width, height float64) gm.Vec {
	return gm.Vec{X: width * s.ViewportHeight / height, Y: s.ViewportHeight}
}

// CalculateWorldToScreenTransform returns the transform that maps world coordinates into
// the pixel coordinates of a render target of the given size.
func CalculateWorldToScreenTransform(projection OrthographicProjection, cameraTransform GlobalTransform, screenSize gm.Vec) gm.Affine {
	scalingMode := projection.ScalingMode
	if scalingMode == nil {
		scalingMode = ScalingModeWindowSize{}
	}

	// the cameras viewport size in world units
	viewportSizeInWorld := scalingMode.
		ViewportSize(screenSize.X, screenSize.Y).
		Mul(projection.Scale)

	viewportOffsetInWorld := projection.ViewportOrigin.MulEach(viewportSizeInWorld)
	scaleWorldToScreen := screenSize.DivEach(viewportSizeInWorld)

	// the inverse of the cameras transform moves the world into view space
	toView, ok := cameraTransform.Affine.TryInverse()
	if !ok {
		toView = gm.IdentityAffine()
	}

	return gm.IdentityAffine().
		Scale(scaleWorldToScreen).
		Translate(viewportOffsetInWorld).
		Mul(toView)
}
