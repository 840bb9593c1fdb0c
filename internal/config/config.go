// Package config handles configuration for the example programs.
package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/phanxgames/banana"
)

// Config holds all program settings.
type Config struct {
	Window  WindowConfig  `yaml:"window" toml:"window"`
	Engine  EngineConfig  `yaml:"engine" toml:"engine"`
	Assets  AssetsConfig  `yaml:"assets" toml:"assets"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title     string `yaml:"title" toml:"title"`
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	Resizable bool   `yaml:"resizable" toml:"resizable"`
	ShowFPS   bool   `yaml:"show_fps" toml:"show_fps"`
	// ScreenshotDir receives F12 screenshots.
	ScreenshotDir string `yaml:"screenshot_dir" toml:"screenshot_dir"`
}

// EngineConfig holds engine behaviour settings.
type EngineConfig struct {
	Debug             bool   `yaml:"debug" toml:"debug"`
	DecodeWorkers     int    `yaml:"decode_workers" toml:"decode_workers"`
	Blend             string `yaml:"blend" toml:"blend"`
	AnimationClock    string `yaml:"animation_clock" toml:"animation_clock"` // "wall" or "activation"
	VelocityPerSecond bool   `yaml:"velocity_per_second" toml:"velocity_per_second"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	Root        string        `yaml:"root" toml:"root"`
	Scripts     []string      `yaml:"scripts" toml:"scripts"`
	HTTPTimeout time.Duration `yaml:"http_timeout" toml:"http_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:         "banana",
			Width:         800,
			Height:        600,
			Resizable:     true,
			ScreenshotDir: "screenshots",
		},
		Engine: EngineConfig{
			Blend:          "linear",
			AnimationClock: "wall",
		},
		Assets: AssetsConfig{
			Root:        "assets",
			HTTPTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// EngineOptions converts the engine and assets sections to banana options.
// The loader serves plain paths from Assets.Root and fetches URLs with
// Assets.HTTPTimeout.
func (c *Config) EngineOptions() (*banana.EngineOptions, error) {
	blend, err := banana.BlendByName(c.Engine.Blend)
	if err != nil {
		return nil, err
	}
	opts := &banana.EngineOptions{
		DebugMode:         c.Engine.Debug,
		DecodeWorkers:     c.Engine.DecodeWorkers,
		Blend:             blend,
		VelocityPerSecond: c.Engine.VelocityPerSecond,
		Loader:            c.AssetLoader(),
	}
	switch c.Engine.AnimationClock {
	case "", "wall":
		opts.AnimationClock = banana.ClockWall
	case "activation":
		opts.AnimationClock = banana.ClockActivation
	default:
		return nil, fmt.Errorf("unknown animation_clock %q", c.Engine.AnimationClock)
	}
	return opts, nil
}

// AssetLoader returns the loader for on-disk and remote assets. An empty
// Root falls back to the OS filesystem.
func (c *Config) AssetLoader() banana.DefaultLoader {
	l := banana.DefaultLoader{Client: &http.Client{Timeout: c.Assets.HTTPTimeout}}
	if c.Assets.Root != "" {
		l.FS = os.DirFS(c.Assets.Root)
	}
	return l
}
