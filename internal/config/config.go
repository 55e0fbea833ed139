// Package config provides the engine settings.
// Settings are read from a YAML file and can be overridden by BURROW_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all engine settings
type Config struct {
	// Room transition animation length in milliseconds. Zero switches rooms instantly.
	RoomTransitionMs int `yaml:"room_transition_ms" env:"BURROW_ROOM_TRANSITION_MS"`

	// Draw outlines around back objects when rooms are cached
	DebugBoundingBoxes bool `yaml:"debug_bounding_boxes" env:"BURROW_DEBUG_BOUNDING_BOXES"`

	LogLevel string `yaml:"log_level" env:"BURROW_LOG_LEVEL"`
	LogFile  string `yaml:"log_file" env:"BURROW_LOG_FILE"`

	Window WindowConfig `yaml:"window"`
	Paths  PathsConfig  `yaml:"paths"`
}

// WindowConfig defines the desktop window
type WindowConfig struct {
	Title     string  `yaml:"title" env:"BURROW_WINDOW_TITLE"`
	Scale     float64 `yaml:"scale" env:"BURROW_WINDOW_SCALE"` // window size relative to the game area
	Resizable bool    `yaml:"resizable" env:"BURROW_WINDOW_RESIZABLE"`
}

// PathsConfig defines where game data lives. Relative entries below Res are
// resolved against Res.
type PathsConfig struct {
	Res           string `yaml:"res" env:"BURROW_RES_DIR"`
	Campaigns     string `yaml:"campaigns" env:"BURROW_CAMPAIGNS_DIR"`
	Cells         string `yaml:"cells"`
	Backgrounds   string `yaml:"backgrounds"`
	BackObjects   string `yaml:"back_objects"`
	MaterialsFile string `yaml:"materials_file"`
	ObjectsFile   string `yaml:"objects_file"`
}

// DefaultConfig returns the settings used when no file is present
func DefaultConfig() *Config {
	return &Config{
		RoomTransitionMs:   350,
		DebugBoundingBoxes: false,
		LogLevel:           "info",
		Window: WindowConfig{
			Title:     "burrow",
			Scale:     0.5,
			Resizable: true,
		},
		Paths: PathsConfig{
			Res:           "res",
			Campaigns:     "campaigns",
			Cells:         filepath.Join("texture", "cells"),
			Backgrounds:   filepath.Join("texture", "backgrounds"),
			BackObjects:   filepath.Join("texture", "objects", "back"),
			MaterialsFile: "materials.json",
			ObjectsFile:   "objects.json",
		},
	}
}

// Load reads settings from a YAML file, then applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for values the engine cannot work with
func (c *Config) Validate() error {
	if c.RoomTransitionMs < 0 {
		return fmt.Errorf("room_transition_ms must not be negative, got %d", c.RoomTransitionMs)
	}
	if c.Window.Scale <= 0 {
		return fmt.Errorf("window scale must be positive, got %v", c.Window.Scale)
	}
	if c.Paths.Res == "" || c.Paths.Campaigns == "" {
		return errors.New("res and campaigns paths are required")
	}
	return nil
}

// RoomTransition returns the transition duration.
func (c *Config) RoomTransition() time.Duration {
	return time.Duration(c.RoomTransitionMs) * time.Millisecond
}

// ResPath resolves a path below the resource directory.
func (c *Config) ResPath(elem ...string) string {
	return filepath.Join(append([]string{c.Paths.Res}, elem...)...)
}

// CellTexture returns the file of a cell texture name.
func (c *Config) CellTexture(name string) string {
	return c.ResPath(c.Paths.Cells, name+".png")
}

// BackgroundTexture returns the file of a full-screen background.
func (c *Config) BackgroundTexture(name string) string {
	return c.ResPath(c.Paths.Backgrounds, name+".png")
}

// BackObjectsDir returns the directory holding back object textures.
func (c *Config) BackObjectsDir() string {
	return c.ResPath(c.Paths.BackObjects)
}

// MaterialsFile returns the material table file.
func (c *Config) MaterialsFile() string {
	return c.ResPath(c.Paths.MaterialsFile)
}

// ObjectsFile returns the object table file.
func (c *Config) ObjectsFile() string {
	return c.ResPath(c.Paths.ObjectsFile)
}

// CampaignDir returns the data directory of a campaign.
func (c *Config) CampaignDir(id string) string {
	return filepath.Join(c.Paths.Campaigns, id)
}
