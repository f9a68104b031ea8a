package bykebiten

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/gm"
)

// ButtonInput tracks the state of buttons of type T for the current frame.
// The just pressed and just released state is reset at the start of every frame.
type ButtonInput[T comparable] struct {
	pressed      []T
	justPressed  []T
	justReleased []T
}

// MouseButtons is the resource holding the state of the mouse buttons.
type MouseButtons = ButtonInput[ebiten.MouseButton]

// Keys is the resource holding the state of the keyboard.
type Keys = ButtonInput[ebiten.Key]

// Press registers a press of the given button. Pressing a button that
// is already pressed has no effect.
func (b *ButtonInput[T]) Press(button T) {
	if slices.Contains(b.pressed, button) {
		return
	}

	b.pressed = append(b.pressed, button)
	b.justPressed = append(b.justPressed, button)
}

// Release registers the release of the given button.
func (b *ButtonInput[T]) Release(button T) {
	idx := slices.Index(b.pressed, button)
	if idx < 0 {
		return
	}

	b.pressed = slices.Delete(b.pressed, idx, idx+1)
	b.justReleased = append(b.justReleased, button)
}

// Clear resets the just pressed and just released state.
func (b *ButtonInput[T]) Clear() {
	b.justPressed = b.justPressed[:0]
	b.justReleased = b.justReleased[:0]
}

func (b ButtonInput[T]) IsPressed(button T) bool {
	return slices.Contains(b.pressed, button)
}

func (b ButtonInput[T]) IsJustPressed(button T) bool {
	return slices.Contains(b.justPressed, button)
}

func (b ButtonInput[T]) IsJustReleased(button T) bool {
	return slices.Contains(b.justReleased, button)
}

// MouseCursor holds the position of the cursor in screen coordinates.
type MouseCursor struct {
	gm.Vec
}

func updateMouseButtonsSystem(buttons *MouseButtons) {
	buttons.Clear()

	for button := range ebiten.MouseButtonMax + 1 {
		if inpututil.IsMouseButtonJustPressed(button) {
			buttons.Press(button)
		}

		if inpututil.IsMouseButtonJustReleased(button) {
			buttons.Release(button)
		}
	}
}

func updateKeysSystem(keys *Keys, scratch *byke.Local[[]ebiten.Key]) {
	keys.Clear()

	scratch.Value = inpututil.AppendJustPressedKeys(scratch.Value[:0])
	for _, key := range scratch.Value {
		keys.Press(key)
	}

	scratch.Value = inpututil.AppendJustReleasedKeys(scratch.Value[:0])
	for _, key := range scratch.Value {
		keys.Release(key)
	}
}

func updateMouseCursorSystem(cursor *MouseCursor) {
	x, y := ebiten.CursorPosition()
	cursor.X = float64(x)
	cursor.Y = float64(y)
}

// KeyJustPressed returns a run condition that is true in the frame the key was pressed.
func KeyJustPressed(key ebiten.Key) byke.Systems {
	return byke.System(func(keys Keys) bool {
		return keys.IsJustPressed(key)
	})
}
