package bykebiten

import (
	"testing"

	"github.com/oliverbestmann/glowmenu/gm"
	"github.com/stretchr/testify/require"
)

func TestCalculateWorldToScreenTransform(t *testing.T) {
	projection := OrthographicProjection{
		ViewportOrigin: gm.Vec{X: 0.5, Y: 0.5},
		ScalingMode:    ScalingModeWindowSize{},
		Scale:          1,
	}

	screen := gm.Vec{X: 800, Y: 600}

	t.Run("camera at the origin", func(t *testing.T) {
		camera := GlobalTransform{Affine: gm.IdentityAffine()}
		toScreen := CalculateWorldToScreenTransform(projection, camera, screen)

		require.Equal(t, gm.Vec{X: 400, Y: 300}, toScreen.Transform(gm.VecZero))
		require.Equal(t, gm.Vec{X: 200, Y: 300}, toScreen.Transform(gm.Vec{X: -200}))
	})

	t.Run("moved camera", func(t *testing.T) {
		camera := GlobalTransform{Affine: NewTransform().WithTranslation(gm.Vec{X: 100}).AsAffine()}
		toScreen := CalculateWorldToScreenTransform(projection, camera, screen)

		require.Equal(t, gm.Vec{X: 400, Y: 300}, toScreen.Transform(gm.Vec{X: 100}))
	})

	t.Run("zoomed out", func(t *testing.T) {
		zoomed := projection
		zoomed.Scale = 2

		camera := GlobalTransform{Affine: gm.IdentityAffine()}
		toScreen := CalculateWorldToScreenTransform(zoomed, camera, screen)

		require.Equal(t, gm.Vec{X: 300, Y: 300}, toScreen.Transform(gm.Vec{X: -200}))
	})
}

func TestScalingModeFixedVertical(t *testing.T) {
	mode := ScalingModeFixedVertical{ViewportHeight: 300}
	require.Equal(t, gm.Vec{X: 400, Y: 300}, mode.ViewportSize(800, 600))
	require.Equal(t, gm.Vec{X: 300, Y: 300}, mode.ViewportSize(600, 600))
}
