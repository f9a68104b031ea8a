package game

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oliverbestmann/glowmenu/byke"
	. "github.com/oliverbestmann/glowmenu/bykebiten"
	"github.com/oliverbestmann/glowmenu/bykebiten/color"
	"github.com/oliverbestmann/glowmenu/gm"
	"github.com/oliverbestmann/glowmenu/internal/appstate"
	"github.com/oliverbestmann/glowmenu/internal/config"
)

var _ = byke.ValidateComponent[GameCamera]()

// IconPath is the path of the sprite image within the assets.
const IconPath = "icon.png"

var (
	IconColor    = color.RGB(5, 5, 5)
	CircleColor  = color.RGB(7.5, 0, 7.5)
	HexagonColor = color.RGB(6.25, 9.4, 9.1)
)

// GameCamera tags the HDR camera of the bloom scene.
type GameCamera struct {
	byke.ComparableComponent[GameCamera]
}

// Plugin shows the bloom scene while the app is in appstate.InGame.
// It expects a config.Config resource.
func Plugin(app *byke.App) {
	app.AddMessage(byke.MessageType[AppExit]())

	inGame := byke.InState(appstate.InGame)

	app.AddSystems(byke.OnEnter(appstate.InGame), byke.System(Setup).RunIf(inGame))

	app.AddSystems(byke.Update, byke.System(loadIconSystem).RunIf(inGame))

	app.AddSystems(byke.Update, byke.
		System(ReloadConfig).
		RunIf(inGame).
		RunIf(byke.ResourceExists[ConfigReloader]))

	app.AddSystems(byke.Update, byke.
		System(exitOnEscapeSystem).
		RunIf(inGame).
		RunIf(KeyJustPressed(ebiten.KeyEscape)))
}

// Setup spawns the bloom scene: an HDR camera, the bright icon sprite,
// a circle and a hexagon.
func Setup(commands *byke.Commands, cfg config.Config, assets *Assets) {
	slog.Info("Setting up bloom scene",
		slog.Float64("intensity", cfg.Bloom.Intensity),
		slog.String("tonemapping", cfg.Bloom.Tonemapping.String()))

	commands.Spawn(
		byke.DespawnOnExitState(appstate.InGame),
		byke.Named("Game Camera"),
		GameCamera{},
		Camera{HDR: true},
		Tonemapping{Method: cfg.Bloom.Tonemapping},
		cfg.Bloom.Bloom(),
	)

	commands.Spawn(
		byke.DespawnOnExitState(appstate.InGame),
		byke.Named("Icon"),
		Sprite{CustomSize: Some(gm.VecSplat(160.0))},
		ColorTint{Color: IconColor},
		loadingIcon{Image: assets.Image(IconPath)},
	)

	commands.Spawn(
		byke.DespawnOnExitState(appstate.InGame),
		byke.Named("Circle"),
		CircleMesh(100, DefaultCircleResolution),
		ColorTint{Color: CircleColor},
		TransformFromXY(-200, 0),
	)

	commands.Spawn(
		byke.DespawnOnExitState(appstate.InGame),
		byke.Named("Hexagon"),
		RegularPolygonMesh(100, 6),
		ColorTint{Color: HexagonColor},
		TransformFromXY(200, 0),
	)
}

func exitOnEscapeSystem(appExit *byke.MessageWriter[AppExit]) {
	appExit.Write(AppExit{})
}
