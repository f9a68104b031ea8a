package bykebiten

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/gm"
	"github.com/stretchr/testify/require"
)

type interactionWorld struct {
	t     *testing.T
	world *byke.World
}

func newInteractionWorld(t *testing.T) *interactionWorld {
	w := byke.NewWorld()
	w.InsertResource(MouseButtons{})
	w.InsertResource(MouseCursor{})

	return &interactionWorld{t: t, world: w}
}

func (iw *interactionWorld) spawnButton(rect gm.Rect, stack int) byke.EntityId {
	return iw.world.Spawn(Button{}, ComputedNode{Rect: rect, Stack: stack})
}

// frame simulates one frame with the given mouse input.
func (iw *interactionWorld) frame(cursor gm.Vec, press, release bool) {
	iw.world.RunSystem(func(buttons *MouseButtons, mouse *MouseCursor) {
		buttons.Clear()
		mouse.Vec = cursor

		if press {
			buttons.Press(ebiten.MouseButtonLeft)
		}

		if release {
			buttons.Release(ebiten.MouseButtonLeft)
		}
	})

	iw.world.RunSystem(interactionSystem)
}

func (iw *interactionWorld) interactionOf(entityId byke.EntityId) Interaction {
	var result Interaction

	iw.world.RunSystem(func(q byke.Query[Interaction]) {
		value, ok := q.Get(entityId)
		require.True(iw.t, ok)
		result = value
	})

	return result
}

func TestInteraction(t *testing.T) {
	iw := newInteractionWorld(t)

	button := iw.spawnButton(gm.RectWithOriginAndSize(gm.VecZero, gm.Vec{X: 100, Y: 50}), 1)

	inside := gm.Vec{X: 50, Y: 25}
	outside := gm.Vec{X: 200, Y: 200}

	iw.frame(outside, false, false)
	require.Equal(t, InteractionNone, iw.interactionOf(button))

	iw.frame(inside, false, false)
	require.Equal(t, InteractionHovered, iw.interactionOf(button))

	iw.frame(inside, true, false)
	require.Equal(t, InteractionPressed, iw.interactionOf(button))

	// stays pressed while the mouse button is held
	iw.frame(outside, false, false)
	require.Equal(t, InteractionPressed, iw.interactionOf(button))

	// released while hovering goes back to hovered
	iw.frame(inside, false, true)
	require.Equal(t, InteractionHovered, iw.interactionOf(button))

	// pressed, then released somewhere else
	iw.frame(inside, true, false)
	iw.frame(outside, false, true)
	require.Equal(t, InteractionNone, iw.interactionOf(button))
}

func TestInteraction_TopMostNodeWins(t *testing.T) {
	iw := newInteractionWorld(t)

	below := iw.spawnButton(gm.RectWithOriginAndSize(gm.VecZero, gm.Vec{X: 100, Y: 100}), 1)
	above := iw.spawnButton(gm.RectWithOriginAndSize(gm.VecZero, gm.Vec{X: 50, Y: 50}), 2)

	iw.frame(gm.Vec{X: 25, Y: 25}, false, false)
	require.Equal(t, InteractionNone, iw.interactionOf(below))
	require.Equal(t, InteractionHovered, iw.interactionOf(above))

	iw.frame(gm.Vec{X: 75, Y: 75}, false, false)
	require.Equal(t, InteractionHovered, iw.interactionOf(below))
	require.Equal(t, InteractionNone, iw.interactionOf(above))
}

func TestInteraction_HiddenNodesAreIgnored(t *testing.T) {
	iw := newInteractionWorld(t)

	button := iw.world.Spawn(
		Button{},
		Hidden,
		ComputedNode{Rect: gm.RectWithOriginAndSize(gm.VecZero, gm.Vec{X: 100, Y: 50})},
	)

	iw.world.RunSystem(propagateVisibilitySystem)

	iw.frame(gm.Vec{X: 10, Y: 10}, false, false)
	require.Equal(t, InteractionNone, iw.interactionOf(button))
}

func TestInteraction_ChangedOnlyOnTransitions(t *testing.T) {
	iw := newInteractionWorld(t)

	iw.spawnButton(gm.RectWithOriginAndSize(gm.VecZero, gm.Vec{X: 100, Y: 50}), 1)

	var changed int
	observe := func(q byke.Query[struct {
		_           byke.Changed[Interaction]
		Interaction Interaction
	}]) {
		changed = q.Count()
	}

	// initial insert
	iw.world.RunSystem(observe)
	require.Equal(t, 1, changed)

	iw.frame(gm.Vec{X: 10, Y: 10}, false, false)
	iw.world.RunSystem(observe)
	require.Equal(t, 1, changed)

	// still hovered, nothing changed
	iw.frame(gm.Vec{X: 20, Y: 10}, false, false)
	iw.world.RunSystem(observe)
	require.Equal(t, 0, changed)

	iw.frame(gm.Vec{X: 20, Y: 10}, true, false)
	iw.world.RunSystem(observe)
	require.Equal(t, 1, changed)
}

func TestInteraction_String(t *testing.T) {
	require.Equal(t, "None", InteractionNone.String())
	require.Equal(t, "Hovered", InteractionHovered.String())
	require.Equal(t, "Pressed", InteractionPressed.String())
}
