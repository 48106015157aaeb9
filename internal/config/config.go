// Package config loads the optional YAML settings file.
package config

import (
	"log/slog"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"polydraw/internal/geom"
)

const Filename = "polydraw.yml"

// maxConfigSize caps the settings file read from disk.
const maxConfigSize = 1024 * 1024

type Export struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config holds user preferences. Colors are hex strings such as "#cccccc".
type Config struct {
	Background        string `yaml:"background"`
	KochColor         string `yaml:"koch_color"`
	DefaultColor      string `yaml:"default_color"`
	DefaultIterations int    `yaml:"default_iterations"`
	SceneDir          string `yaml:"scene_dir"`
	LogLevel          string `yaml:"log_level"`
	Export            Export `yaml:"export"`
}

func Default() Config {
	return Config{
		Background:        "#cccccc",
		KochColor:         "#000000",
		DefaultColor:      "#ff0000",
		DefaultIterations: 3,
		SceneDir:          ".",
		LogLevel:          "info",
		Export:            Export{Width: 800, Height: 800},
	}
}

// Load reads path on top of the defaults. A missing file yields the
// defaults silently; an unreadable or malformed one is logged and ignored.
func Load(path string) Config {
	cfg := Default()
	if path == "" {
		return cfg
	}

	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to stat config", "path", path, "error", err)
		}
		return cfg
	}
	if info.Size() > maxConfigSize {
		slog.Warn("config file too large", "path", path, "size", info.Size())
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read config", "path", path, "error", err)
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Warn("failed to parse config", "path", path, "error", err)
		return Default()
	}
	cfg.sanitize()

	slog.Info("loaded config", "path", path, "size", info.Size())
	return cfg
}

// sanitize resets fields that cannot be used to their defaults.
func (c *Config) sanitize() {
	d := Default()
	for _, f := range []struct {
		name     string
		val, def *string
	}{
		{"background", &c.Background, &d.Background},
		{"koch_color", &c.KochColor, &d.KochColor},
		{"default_color", &c.DefaultColor, &d.DefaultColor},
	} {
		if _, err := colorful.Hex(*f.val); err != nil {
			slog.Warn("invalid color in config", "field", f.name, "value", *f.val)
			*f.val = *f.def
		}
	}
	if c.DefaultIterations < 1 || c.DefaultIterations > geom.MaxIterations {
		c.DefaultIterations = d.DefaultIterations
	}
	if c.Export.Width < 1 {
		c.Export.Width = d.Export.Width
	}
	if c.Export.Height < 1 {
		c.Export.Height = d.Export.Height
	}
	if c.SceneDir == "" {
		c.SceneDir = d.SceneDir
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		slog.Warn("invalid log level in config", "value", c.LogLevel)
		c.LogLevel = d.LogLevel
	}
}

// Level returns the configured log level, Info when unparsable.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c Config) BackgroundColor() geom.Color { return HexColor(c.Background, geom.DefaultBackground) }
func (c Config) KochLineColor() geom.Color   { return HexColor(c.KochColor, geom.Black) }
func (c Config) PickerColor() geom.Color     { return HexColor(c.DefaultColor, geom.Color{R: 1, A: 1}) }

// HexColor parses s as an opaque color, returning fallback on error.
func HexColor(s string, fallback geom.Color) geom.Color {
	col, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	return FromColorful(col)
}

func FromColorful(col colorful.Color) geom.Color {
	col = col.Clamped()
	return geom.Color{R: col.R, G: col.G, B: col.B, A: 1}
}

func ToHex(c geom.Color) string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}
