package bykebiten

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/gm"
)

// AppExit ends the game loop at the end of the frame. A nil Err exits successfully.
type AppExit struct {
	Err error
}

type WindowConfig struct {
	Title         string
	Width         int
	Height        int
	DisableResize bool

	// DesktopApp stops updating the app while its window is not focused.
	DesktopApp bool
}

// ScreenSize is the size of the screen in pixels.
type ScreenSize struct {
	gm.Vec
}

// DebugOverlay shows frame statistics on top of everything. Toggle using F3.
type DebugOverlay struct {
	Enabled bool
}

func GamePlugin(app *byke.App) {
	assetFs, ok := byke.ResourceOf[AssetFS](app.World())
	if !ok {
		fallback := MakeAssetFS(os.DirFS("."))
		assetFs = &fallback
	}

	if _, ok := byke.ResourceOf[WindowConfig](app.World()); !ok {
		app.InsertResource(WindowConfig{
			Title:  "Ebitengine",
			Width:  800,
			Height: 600,
		})
	}

	app.AddPlugin(byke.PluginFunc(UiPlugin))

	app.InsertResource(screenRenderTarget{})
	app.InsertResource(DebugOverlay{})
	app.InsertResource(Keys{})

	app.InsertResource(MakeAssets(assetFs.FS))

	app.AddSystems(byke.First, updateMouseCursorSystem, updateMouseButtonsSystem, updateKeysSystem)

	app.AddSystems(byke.Render, byke.System(renderSystem, renderUiSystem).Chain())

	app.AddSystems(byke.Update, byke.
		System(toggleDebugOverlaySystem).
		RunIf(KeyJustPressed(ebiten.KeyF3)))

	app.AddSystems(byke.PostRender, debugOverlaySystem)

	// read AppExit messages last so the next update tick can already exit the app.
	app.AddSystems(byke.Last, readAppExitMessagesSystem)

	// start the game
	app.RunWorld(runWorld)
}

// UiPlugin adds the parts of the GamePlugin that do not need a window:
// input resources, the AppExit message, transform and visibility propagation,
// the ui layout and the interaction of buttons. The host is expected to update
// the MouseButtons, MouseCursor and ScreenSize resources every frame.
func UiPlugin(app *byke.App) {
	app.InsertResource(MouseCursor{})
	app.InsertResource(MouseButtons{})
	app.InsertResource(ScreenSize{})

	app.AddMessage(byke.MessageType[AppExit]())

	app.AddSystems(byke.PreUpdate, byke.System(interactionSystem))

	app.AddSystems(byke.PostUpdate, byke.
		System(propagateTransformSystem, propagateVisibilitySystem, layoutSystem).
		Chain())
}

func toggleDebugOverlaySystem(overlay *DebugOverlay) {
	overlay.Enabled = !overlay.Enabled
}

func debugOverlaySystem(overlay DebugOverlay, renderTarget screenRenderTarget, vt byke.VirtualTime) {
	if !overlay.Enabled {
		return
	}

	text := fmt.Sprintf("fps=%5.1f, tps=%5.1f, elapsed=%s",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		vt.Elapsed.Truncate(10*time.Millisecond),
	)

	ebitenutil.DebugPrintAt(renderTarget.Image, text, 16, 16)
}

func runWorld(world *byke.World) error {
	world.InsertResource(game{World: world})

	win, _ := byke.ResourceOf[WindowConfig](world)
	ebiten.SetWindowTitle(win.Title)
	ebiten.SetWindowSize(win.Width, win.Height)

	if !win.DisableResize {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	// a desktop app does not need to do any work while in the background
	ebiten.SetRunnableOnUnfocused(!win.DesktopApp)

	var options ebiten.RunGameOptions
	options.SingleThread = true

	slog.Info("Starting game loop",
		slog.String("title", win.Title),
		slog.Int("width", win.Width),
		slog.Int("height", win.Height))

	theGame, _ := byke.ResourceOf[game](world)

	err := ebiten.RunGameWithOptions(theGame, &options)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}

	return err
}

type game struct {
	World *byke.World

	// set to exit the app
	appExit *AppExit
}

func (g *game) Update() error {
	if g.appExit == nil {
		return nil
	}

	if g.appExit.Err != nil {
		return g.appExit.Err
	}

	return ebiten.Termination
}

func (g *game) Draw(screen *ebiten.Image) {
	g.World.InsertResource(screenRenderTarget{Image: screen})
	g.World.InsertResource(ScreenSize{Vec: imageSizeOf(screen)})

	g.World.RunSchedule(byke.Main)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return outsideWidth, outsideHeight
}

func readAppExitMessagesSystem(messages *byke.MessageReader[AppExit], game *game) {
	for _, msg := range messages.Read() {
		slog.Info("Exit requested", slog.Any("error", msg.Err))
		game.appExit = &msg
	}
}
