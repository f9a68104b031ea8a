package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/oliverbestmann/glowmenu/byke"
	"github.com/oliverbestmann/glowmenu/internal/appstate"
	"github.com/oliverbestmann/glowmenu/internal/config"
	"github.com/oliverbestmann/glowmenu/internal/demo"
	"github.com/oliverbestmann/glowmenu/internal/game"
	"github.com/oliverbestmann/glowmenu/internal/logging"
	"github.com/pkg/profile"
)

type flags struct {
	Config   string
	State    string
	LogLevel string
	Profile  string
	Watch    bool
}

func main() {
	var f flags
	flag.StringVar(&f.Config, "config", "glowmenu.toml", "path of the configuration file")
	flag.StringVar(&f.State, "state", "", "initial state, one of MainMenu, InGame or Paused")
	flag.StringVar(&f.LogLevel, "log-level", "", "log level, overrides the configuration")
	flag.StringVar(&f.Profile, "profile", "", "record a profile: cpu or mem")
	flag.BoolVar(&f.Watch, "watch", true, "reload the bloom settings when the configuration file changes")
	flag.Parse()

	if err := run(f); err != nil {
		slog.Error("Exit with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(f flags) error {
	switch f.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", f.Profile)
	}

	cfg, err := config.LoadFile(f.Config)
	if err != nil {
		return err
	}

	if f.State != "" {
		cfg.App.InitialState, err = appstate.ParseAppState(f.State)
		if err != nil {
			return err
		}
	}

	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}

	logger, err := logging.Setup(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}

	opts := demo.Options{
		Config:  cfg,
		AssetFS: os.DirFS(cfg.App.Assets),
	}

	if f.Watch {
		watcher, err := config.Watch(f.Config)
		if err != nil {
			slog.Warn("Config file is not watched", slog.String("error", err.Error()))
		} else {
			defer func() { _ = watcher.Close() }()

			opts.Reloader = &game.ConfigReloader{
				Source: watcher,
				OnReload: func(updated config.Config) {
					if f.LogLevel != "" {
						return
					}

					if err := logging.SetLevel(logger, updated.Log.Level); err != nil {
						slog.Warn("Keeping log level", slog.String("error", err.Error()))
					}
				},
			}
		}
	}

	slog.Info("Starting",
		slog.String("config", f.Config),
		slog.String("state", cfg.App.InitialState.String()))

	var app byke.App
	app.AddPlugin(demo.Plugin(opts))

	return app.Run()
}
