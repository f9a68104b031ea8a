package demo

import (
	"io/fs"

	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/bykebiten"
	"github.com/oliverbestmann/glowmenu/internal/appstate"
	"github.com/oliverbestmann/glowmenu/internal/config"
	"github.com/oliverbestmann/glowmenu/internal/game"
	"github.com/oliverbestmann/glowmenu/internal/menu"
)

type Options struct {
	Config config.Config

	// Assets are loaded from here. Defaults to the directory configured in Config.
	AssetFS fs.FS

	// Enables live reloading of the bloom settings if set.
	Reloader *game.ConfigReloader

	// Host drives the app. Defaults to bykebiten.GamePlugin, which opens a window.
	Host byke.PluginFunc
}

// Plugin configures the main menu and the bloom scene.
func Plugin(opts Options) byke.PluginFunc {
	return func(app *byke.App) {
		cfg := opts.Config

		app.InsertResource(cfg)

		app.InsertResource(bykebiten.WindowConfig{
			Title:      cfg.Window.Title,
			Width:      cfg.Window.Width,
			Height:     cfg.Window.Height,
			DesktopApp: cfg.Window.DesktopApp,
		})

		if opts.AssetFS != nil {
			app.InsertResource(bykebiten.AssetFS{FS: opts.AssetFS})
		}

		if opts.Reloader != nil {
			app.InsertResource(*opts.Reloader)
		}

		app.InitState(byke.StateType[appstate.AppState]{InitialValue: cfg.App.InitialState})

		app.AddPlugin(byke.PluginFunc(menu.Plugin))
		app.AddPlugin(byke.PluginFunc(game.Plugin))

		host := opts.Host
		if host == nil {
			host = bykebiten.GamePlugin
		}

		app.AddPlugin(host)
	}
}
