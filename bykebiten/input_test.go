package bykebiten

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"
)

func TestButtonInput(t *testing.T) {
	var buttons MouseButtons

	buttons.Press(ebiten.MouseButtonLeft)
	require.True(t, buttons.IsPressed(ebiten.MouseButtonLeft))
	require.True(t, buttons.IsJustPressed(ebiten.MouseButtonLeft))
	require.False(t, buttons.IsJustReleased(ebiten.MouseButtonLeft))

	// next frame, still held
	buttons.Clear()
	buttons.Press(ebiten.MouseButtonLeft)
	require.True(t, buttons.IsPressed(ebiten.MouseButtonLeft))
	require.False(t, buttons.IsJustPressed(ebiten.MouseButtonLeft))

	// released
	buttons.Clear()
	buttons.Release(ebiten.MouseButtonLeft)
	require.False(t, buttons.IsPressed(ebiten.MouseButtonLeft))
	require.True(t, buttons.IsJustReleased(ebiten.MouseButtonLeft))

	// releasing a button that is not pressed is ignored
	buttons.Clear()
	buttons.Release(ebiten.MouseButtonRight)
	require.False(t, buttons.IsJustReleased(ebiten.MouseButtonRight))
}
