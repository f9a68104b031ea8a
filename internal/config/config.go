package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/oliverbestmann/glowmenu/bykebiten"
	"github.com/oliverbestmann/glowmenu/internal/appstate"
	"github.com/pelletier/go-toml/v2"
)

// Config is the content of the toml configuration file. Fields missing
// in the file keep their default value.
type Config struct {
	Window Window `toml:"window"`
	App    App    `toml:"app"`
	Bloom  Bloom  `toml:"bloom"`
	Log    Log    `toml:"log"`
}

type Window struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	DesktopApp bool   `toml:"desktop_app"`
}

type App struct {
	InitialState appstate.AppState `toml:"initial_state"`

	// Directory to load assets from, relative to the working directory.
	Assets string `toml:"assets"`
}

// Bloom configures the bloom and tonemapping of the game camera.
type Bloom struct {
	Intensity                  float64                      `toml:"intensity"`
	LowFrequencyBoost          float64                      `toml:"low_frequency_boost"`
	LowFrequencyBoostCurvature float64                      `toml:"low_frequency_boost_curvature"`
	HighPassFrequency          float64                      `toml:"high_pass_frequency"`
	Threshold                  float64                      `toml:"threshold"`
	ThresholdSoftness          float64                      `toml:"threshold_softness"`
	CompositeMode              bykebiten.BloomCompositeMode `toml:"composite_mode"`
	MaxMipDimension            uint32                       `toml:"max_mip_dimension"`
	Tonemapping                bykebiten.TonemappingMethod  `toml:"tonemapping"`
}

type Log struct {
	Level string `toml:"level"`
}

func Default() Config {
	bloom := bykebiten.DefaultBloom()

	return Config{
		Window: Window{
			Title:  "Bloom & Menu",
			Width:  1280,
			Height: 720,
		},
		App: App{
			InitialState: appstate.MainMenu,
			Assets:       "assets",
		},
		Bloom: Bloom{
			Intensity:                  bloom.Intensity,
			LowFrequencyBoost:          bloom.LowFrequencyBoost,
			LowFrequencyBoostCurvature: bloom.LowFrequencyBoostCurvature,
			HighPassFrequency:          bloom.HighPassFrequency,
			Threshold:                  bloom.Prefilter.Threshold,
			ThresholdSoftness:          bloom.Prefilter.ThresholdSoftness,
			CompositeMode:              bloom.CompositeMode,
			MaxMipDimension:            bloom.MaxMipDimension,
			Tonemapping:                bykebiten.TonemappingAcesFitted,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Bloom returns the camera component for this configuration.
func (b Bloom) Bloom() bykebiten.Bloom {
	return bykebiten.Bloom{
		Intensity:                  b.Intensity,
		LowFrequencyBoost:          b.LowFrequencyBoost,
		LowFrequencyBoostCurvature: b.LowFrequencyBoostCurvature,
		HighPassFrequency:          b.HighPassFrequency,
		Prefilter: bykebiten.BloomPrefilter{
			Threshold:         b.Threshold,
			ThresholdSoftness: b.ThresholdSoftness,
		},
		CompositeMode:   b.CompositeMode,
		MaxMipDimension: b.MaxMipDimension,
	}
}

// Load reads the configuration file at path within fsys. If the file does
// not exist, the default configuration is returned.
func Load(fsys fs.FS, path string) (Config, error) {
	buf, err := fs.ReadFile(fsys, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Default(), nil

	case err != nil:
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	config, err := Parse(bytes.NewReader(buf))
	if err != nil {
		return Config{}, fmt.Errorf("config %q: %w", path, err)
	}

	return config, nil
}

// Parse decodes a toml configuration on top of the defaults.
// Unknown fields are reported as an error.
func Parse(r io.Reader) (Config, error) {
	config := Default()

	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return Config{}, fmt.Errorf("%w:\n%s", err, strictErr.String())
		}

		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}

	if c.Bloom.Intensity < 0 {
		return fmt.Errorf("bloom intensity must not be negative: %g", c.Bloom.Intensity)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level %q: %w", c.Log.Level, err)
	}

	return nil
}

// Marshal encodes the configuration as toml.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
