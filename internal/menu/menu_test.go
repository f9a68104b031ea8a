package menu

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/glowmenu/byke"
	. "github.com/oliverbestmann/glowmenu/bykebiten"
	"github.com/oliverbestmann/glowmenu/bykebiten/color"
	"github.com/oliverbestmann/glowmenu/gm"
	"github.com/oliverbestmann/glowmenu/internal/appstate"
	"github.com/stretchr/testify/require"
)

// buttons are 150x50 with a 5px margin, stacked in the center of an 800x600 window.
var (
	startCenter    = gm.Vec{X: 400, Y: 210}
	continueCenter = gm.Vec{X: 400, Y: 270}
	optionsCenter  = gm.Vec{X: 400, Y: 330}
	quitCenter     = gm.Vec{X: 400, Y: 390}
	background     = gm.Vec{X: 20, Y: 20}
)

type menuWorld struct {
	t     *testing.T
	world *byke.World
}

func newMenuWorld(t *testing.T) *menuWorld {
	var app byke.App
	app.AddPlugin(byke.PluginFunc(UiPlugin))
	app.InsertResource(ScreenSize{Vec: gm.Vec{X: 800, Y: 600}})

	app.InitState(byke.StateType[appstate.AppState]{InitialValue: appstate.MainMenu})

	app.AddPlugin(byke.PluginFunc(Plugin))

	return &menuWorld{t: t, world: app.World()}
}

func (mw *menuWorld) frame(cursor gm.Vec, press, release bool) {
	mw.world.RunSystem(func(buttons *MouseButtons, mouse *MouseCursor) {
		buttons.Clear()
		mouse.Vec = cursor

		if press {
			buttons.Press(ebiten.MouseButtonLeft)
		}

		if release {
			buttons.Release(ebiten.MouseButtonLeft)
		}
	})

	mw.world.RunSchedule(byke.Main)
}

type labelItem struct {
	Text    Text
	ChildOf byke.ChildOf
}

type colorsItem struct {
	Background BackgroundColor
	Border     BorderColor
}

func (mw *menuWorld) colorsOf(label string) (inner, outer color.Color) {
	found := false

	mw.world.RunSystem(func(labels byke.Query[labelItem], colors byke.Query[colorsItem]) {
		for item := range labels.Items() {
			if item.Text.Text != label {
				continue
			}

			value, ok := colors.Get(item.ChildOf.Parent)
			require.True(mw.t, ok)

			inner, outer, found = value.Background.Color, value.Border.Color, true
		}
	})

	require.True(mw.t, found, "button %q not found", label)
	return inner, outer
}

func (mw *menuWorld) pendingState() (appstate.AppState, bool) {
	next, ok := byke.ResourceOf[byke.NextState[appstate.AppState]](mw.world)
	require.True(mw.t, ok)
	return next.Pending()
}

func (mw *menuWorld) currentState() appstate.AppState {
	state, ok := byke.ResourceOf[byke.State[appstate.AppState]](mw.world)
	require.True(mw.t, ok)
	return state.Current()
}

func TestSetupMenu(t *testing.T) {
	mw := newMenuWorld(t)
	mw.frame(background, false, false)

	var labels []string
	mw.world.RunSystem(func(buttons byke.Query[struct {
		_        byke.With[Button]
		Node     Node
		Children byke.Children
	}], texts byke.Query[Text]) {
		for button := range buttons.Items() {
			require.Equal(t, Px(150), button.Node.Width)
			require.Equal(t, Px(50), button.Node.Height)
			require.Equal(t, UiRectAll(Px(5)), button.Node.Border)
			require.Equal(t, UiRectAll(Px(5)), button.Node.Margin)

			require.Equal(t, 1, button.Children.Len())

			child, _ := button.Children.First()
			text, ok := texts.Get(child)
			require.True(t, ok)

			labels = append(labels, text.Text)
		}
	})

	require.ElementsMatch(t, ButtonTexts, labels)

	for _, label := range ButtonTexts {
		inner, outer := mw.colorsOf(label)
		require.Equal(t, StaticInner, inner)
		require.Equal(t, StaticOuter, outer)
	}

	cameras := 0
	mw.world.RunSystem(func(q byke.Query[struct {
		_      byke.With[MenuCamera]
		Camera Camera
	}]) {
		cameras = q.Count()
	})

	require.Equal(t, 1, cameras)
}

func TestUpdateMenu_Colors(t *testing.T) {
	mw := newMenuWorld(t)

	// the first frame computes the layout
	mw.frame(background, false, false)

	mw.frame(startCenter, false, false)
	inner, outer := mw.colorsOf(ButtonStart)
	require.Equal(t, HoverInner, inner)
	require.Equal(t, HoverOuter, outer)

	// other buttons are untouched
	inner, _ = mw.colorsOf(ButtonQuit)
	require.Equal(t, StaticInner, inner)

	mw.frame(startCenter, true, false)
	inner, outer = mw.colorsOf(ButtonStart)
	require.Equal(t, PressedInner, inner)
	require.Equal(t, PressedOuter, outer)

	// leave the button while pressed: it stays pressed
	mw.frame(background, false, false)
	inner, _ = mw.colorsOf(ButtonStart)
	require.Equal(t, PressedInner, inner)

	// releasing outside the button does not start the game
	mw.frame(background, false, true)
	inner, outer = mw.colorsOf(ButtonStart)
	require.Equal(t, StaticInner, inner)
	require.Equal(t, StaticOuter, outer)

	_, pending := mw.pendingState()
	require.False(t, pending)
	require.Equal(t, appstate.MainMenu, mw.currentState())
}

func TestUpdateMenu_StartEntersGame(t *testing.T) {
	mw := newMenuWorld(t)

	mw.frame(background, false, false)
	mw.frame(startCenter, false, false)

	// pressing alone does not start the game
	mw.frame(startCenter, true, false)
	_, pending := mw.pendingState()
	require.False(t, pending)

	mw.frame(startCenter, false, true)

	next, pending := mw.pendingState()
	require.True(t, pending)
	require.Equal(t, appstate.InGame, next)

	// the transition happens in the next frame and removes the menu
	mw.frame(startCenter, false, false)
	require.Equal(t, appstate.InGame, mw.currentState())

	remaining := -1
	mw.world.RunSystem(func(nodes byke.Query[Node], cameras byke.Query[MenuCamera]) {
		remaining = nodes.Count() + cameras.Count()
	})

	require.Zero(t, remaining)
}

func TestUpdateMenu_QuitWritesAppExit(t *testing.T) {
	mw := newMenuWorld(t)

	mw.frame(background, false, false)
	mw.frame(quitCenter, false, false)
	mw.frame(quitCenter, true, false)
	mw.frame(quitCenter, false, true)

	var exits []AppExit
	mw.world.RunSystem(func(reader *byke.MessageReader[AppExit]) {
		exits = append(exits, reader.Read()...)
	})

	require.Equal(t, []AppExit{{}}, exits)
	require.Equal(t, appstate.MainMenu, mw.currentState())
}

func TestUpdateMenu_InactiveButtonsDoNothing(t *testing.T) {
	tests := []struct {
		label  string
		center gm.Vec
	}{
		{ButtonContinue, continueCenter},
		{ButtonOptions, optionsCenter},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			mw := newMenuWorld(t)

			mw.frame(background, false, false)
			mw.frame(tt.center, false, false)
			mw.frame(tt.center, true, false)

			require.NotPanics(t, func() {
				mw.frame(tt.center, false, true)
			})

			// the release left the button hovered
			inner, outer := mw.colorsOf(tt.label)
			require.Equal(t, HoverInner, inner)
			require.Equal(t, HoverOuter, outer)

			_, pending := mw.pendingState()
			require.False(t, pending)

			var exits []AppExit
			mw.world.RunSystem(func(reader *byke.MessageReader[AppExit]) {
				exits = append(exits, reader.Read()...)
			})

			require.Empty(t, exits)

			mw.frame(tt.center, false, false)
			require.Equal(t, appstate.MainMenu, mw.currentState())
		})
	}
}

func TestUpdateMenu_UnknownButtonPanics(t *testing.T) {
	mw := newMenuWorld(t)

	mw.world.Spawn(
		Button{},
		InteractionHovered,
		byke.SpawnChild(Text{Text: "Credits"}),
	)

	mw.world.RunSystem(func(buttons *MouseButtons) {
		buttons.Press(ebiten.MouseButtonLeft)
		buttons.Clear()
		buttons.Release(ebiten.MouseButtonLeft)
	})

	require.PanicsWithValue(t, "unreachable UI state", func() {
		mw.world.RunSystem(UpdateMenu)
	})
}

func TestCleanup(t *testing.T) {
	w := byke.NewWorld()

	root := w.Spawn(Node{}, byke.SpawnChild(Button{}, byke.SpawnChild(Text{Text: "x"})))
	camera := w.Spawn(Camera{}, MenuCamera{})
	other := w.Spawn(Camera{})

	w.RunSystem(Cleanup[Node])
	w.RunSystem(Cleanup[MenuCamera])

	require.False(t, w.Exists(root))
	require.False(t, w.Exists(camera))
	require.True(t, w.Exists(other))

	count := -1
	w.RunSystem(func(q byke.Query[Node]) { count = q.Count() })
	require.Zero(t, count)
}
