package engine

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/emberterm/render"
	"github.com/lixenwraith/emberterm/terminal"
)

// Color re-exported for engine callers
type Color = render.Color

// Config describes an Engine. The zero value plus fill() yields a
// 80×24 uncapped-FPS engine on the default terminal.
type Config struct {
	Width  int
	Height int

	// FPSLimit caps the frame rate; 0 means uncapped
	FPSLimit int

	Title string

	// ParticleCapacity pre-sizes the particle vector
	ParticleCapacity int

	// ParticleAspectY compresses particle motion vertically at draw
	// time; 1 disables, 0.5 reads well on most terminals
	ParticleAspectY float32

	// BlendColor overrides the detected terminal background used as
	// the bottom layer of alpha blends
	BlendColor *Color

	// Terminal substitutes a specific backend; nil selects the ANSI
	// terminal
	Terminal terminal.Terminal `toml:"-"`
}

func (c *Config) fill() {
	if c.Width <= 0 {
		c.Width = 80
	}
	if c.Height <= 0 {
		c.Height = 24
	}
	if c.ParticleCapacity <= 0 {
		c.ParticleCapacity = 512
	}
	if c.ParticleAspectY <= 0 {
		c.ParticleAspectY = 1.0
	}
}

// fileConfig is the TOML shape of Config
type fileConfig struct {
	Width            int     `toml:"width"`
	Height           int     `toml:"height"`
	FPSLimit         int     `toml:"fps_limit"`
	Title            string  `toml:"title"`
	ParticleCapacity int     `toml:"particle_capacity"`
	ParticleAspectY  float32 `toml:"particle_aspect_y"`
	BlendColor       string  `toml:"blend_color"` // "#rrggbb", empty = detect
}

// LoadConfig reads a TOML engine configuration
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := Config{
		Width:            fc.Width,
		Height:           fc.Height,
		FPSLimit:         fc.FPSLimit,
		Title:            fc.Title,
		ParticleCapacity: fc.ParticleCapacity,
		ParticleAspectY:  fc.ParticleAspectY,
	}
	if fc.BlendColor != "" {
		c := render.Hex(fc.BlendColor)
		cfg.BlendColor = &c
	}
	cfg.fill()
	return cfg, nil
}
