package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/bough/gpu"
)

//go:embed demo.yaml
var defaultConfig []byte

// Config is the demo's YAML configuration.
type Config struct {
	Window gpu.RunConfig `yaml:"window"`
	Scene  SceneConfig   `yaml:"scene"`
	Script []Step        `yaml:"script"`
}

// SceneConfig controls what the demo scene contains.
type SceneConfig struct {
	Boxes      int     `yaml:"boxes"`
	BoxSize    float64 `yaml:"box_size"`
	OrbitSpeed float64 `yaml:"orbit_speed"`
	Blur       int     `yaml:"blur"`
	Outline    int     `yaml:"outline"`
	Masked     bool    `yaml:"masked"`
}

// loadConfig reads path, or the embedded default when path is empty.
func loadConfig(path string) (*Config, error) {
	data := defaultConfig
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		data = b
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Scene.Boxes < 0 {
		return nil, fmt.Errorf("parse config: scene.boxes must not be negative, got %d", cfg.Scene.Boxes)
	}
	if cfg.Scene.BoxSize <= 0 {
		cfg.Scene.BoxSize = 24
	}
	if cfg.Window.Width <= 0 {
		cfg.Window.Width = 640
	}
	if cfg.Window.Height <= 0 {
		cfg.Window.Height = 480
	}
	for i, st := range cfg.Script {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse config: script step %d: %w", i, err)
		}
	}
	return &cfg, nil
}
