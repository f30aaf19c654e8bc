package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	data := `
width = 120
height = 40
fps_limit = 144
title = "bench"
particle_capacity = 4096
particle_aspect_y = 0.5
blend_color = "#102030"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Width != 120 || cfg.Height != 40 {
		t.Errorf("dimensions: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPSLimit != 144 {
		t.Errorf("fps limit: %d", cfg.FPSLimit)
	}
	if cfg.Title != "bench" {
		t.Errorf("title: %q", cfg.Title)
	}
	if cfg.ParticleCapacity != 4096 {
		t.Errorf("particle capacity: %d", cfg.ParticleCapacity)
	}
	if cfg.BlendColor == nil {
		t.Fatal("blend color not parsed")
	}
	if *cfg.BlendColor != (Color{R: 0x10, G: 0x20, B: 0x30, A: 255}) {
		t.Errorf("blend color: %+v", *cfg.BlendColor)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 80 || cfg.Height != 24 {
		t.Errorf("defaults: %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.BlendColor != nil {
		t.Error("empty blend color must stay nil for detection")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing file must error")
	}
}
