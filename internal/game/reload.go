package game

import (
	"log/slog"
	"time"

	"github.com/oliverbestmann/glowmenu/byke"
	. "github.com/oliverbestmann/glowmenu/bykebiten"
	"github.com/oliverbestmann/glowmenu/internal/config"
)

// ReloadDebounce is the time to wait after the last change of the
// config file before it is read again.
const ReloadDebounce = 250 * time.Millisecond

// ConfigSource provides updates of the configuration, e.g. a config.Watcher.
type ConfigSource interface {
	Changed() <-chan struct{}
	Load() (config.Config, error)
}

// ConfigReloader is the resource that enables live reloading of the bloom settings.
type ConfigReloader struct {
	Source ConfigSource

	// Called with the new configuration after it was applied to the scene.
	OnReload func(config.Config)
}

type reloadState struct {
	debounce Timer
	pending  bool
}

type gameCameraItem struct {
	_ byke.With[GameCamera]

	Bloom       *Bloom
	Tonemapping *Tonemapping
}

// ReloadConfig applies the bloom section of a changed configuration file to
// the game camera and the config.Config resource.
func ReloadConfig(
	vt byke.VirtualTime,
	reloader byke.ResOption[ConfigReloader],
	cfg *config.Config,
	cameras byke.Query[gameCameraItem],
	state *byke.Local[reloadState],
) {
	if reloader.Value == nil || reloader.Value.Source == nil {
		return
	}

	s := &state.Value

	select {
	case <-reloader.Value.Source.Changed():
		// restart the debounce on every change
		s.pending = true
		s.debounce = NewTimer(ReloadDebounce, TimerModeOnce)

	default:
	}

	if !s.pending {
		return
	}

	s.debounce.Tick(vt.Delta)
	if !s.debounce.JustFinished() {
		return
	}

	s.pending = false

	updated, err := reloader.Value.Source.Load()
	if err != nil {
		slog.Warn("Reloading config failed, keeping current settings", slog.String("error", err.Error()))
		return
	}

	cfg.Bloom = updated.Bloom
	cfg.Log = updated.Log

	for camera := range cameras.Items() {
		*camera.Bloom = updated.Bloom.Bloom()
		camera.Tonemapping.Method = updated.Bloom.Tonemapping
	}

	slog.Info("Reloaded config",
		slog.Float64("intensity", updated.Bloom.Intensity),
		slog.String("compositeMode", updated.Bloom.CompositeMode.String()),
		slog.String("tonemapping", updated.Bloom.Tonemapping.String()))

	if reloader.Value.OnReload != nil {
		reloader.Value.OnReload(*cfg)
	}
}
