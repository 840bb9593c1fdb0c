package config

import "flag"

// Flags holds command-line overrides.
type Flags struct {
	Config *string
	debug  *bool
	width  *int
	height *int
	blend  *string
	level  *string
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Config: fs.String("config", "", "Path to config file (.yaml or .toml)"),
		debug:  fs.Bool("debug", false, "Enable debug mode and debug logging"),
		width:  fs.Int("width", 0, "Window width"),
		height: fs.Int("height", 0, "Window height"),
		blend:  fs.String("blend", "", "Keyframe blend curve"),
		level:  fs.String("log-level", "", "Log level (debug, info, warn, error)"),
	}
}

// Apply applies flag overrides to cfg. Flags have the highest priority.
func (f *Flags) Apply(cfg *Config) {
	if *f.debug {
		cfg.Engine.Debug = true
		cfg.Logging.Level = "debug"
	}
	if *f.width > 0 {
		cfg.Window.Width = *f.width
	}
	if *f.height > 0 {
		cfg.Window.Height = *f.height
	}
	if *f.blend != "" {
		cfg.Engine.Blend = *f.blend
	}
	if *f.level != "" {
		cfg.Logging.Level = *f.level
	}
}
