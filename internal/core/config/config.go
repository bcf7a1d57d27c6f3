// Package config loads and validates the storetracker configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yutounun/storetracker/internal/core/styles"
)

// Config is the root of the YAML configuration.
type Config struct {
	Theme   string        `yaml:"theme"`
	Tracker TrackerConfig `yaml:"tracker"`
	Demo    DemoConfig    `yaml:"demo"`
}

// TrackerConfig controls the debug overlay.
type TrackerConfig struct {
	Side              string `yaml:"side"`                // right | left
	WidthPercent      int    `yaml:"width_percent"`       // share of the screen width
	BodyHeightPercent int    `yaml:"body_height_percent"` // cap of an open section body
	HelpSection       bool   `yaml:"help_section"`        // render the usage section
}

// DemoConfig controls the demo host.
type DemoConfig struct {
	StateFile string `yaml:"state_file"` // optional JSON/YAML state document
	Watch     bool   `yaml:"watch"`      // reload the state file on change
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Theme: styles.DefaultTheme,
		Tracker: TrackerConfig{
			Side:              "right",
			WidthPercent:      50,
			BodyHeightPercent: 30,
			HelpSection:       true,
		},
	}
}

// Load reads the config file at configPath over the defaults. A missing
// file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Tracker.Side == "" {
		c.Tracker.Side = defaults.Tracker.Side
	}
	if c.Tracker.WidthPercent == 0 {
		c.Tracker.WidthPercent = defaults.Tracker.WidthPercent
	}
	if c.Tracker.BodyHeightPercent == 0 {
		c.Tracker.BodyHeightPercent = defaults.Tracker.BodyHeightPercent
	}
}

// Palette returns the palette of the configured theme.
func (c *Config) Palette() styles.Palette {
	p, ok := styles.GetPalette(c.Theme)
	if !ok {
		p, _ = styles.GetPalette(styles.DefaultTheme)
	}
	return p
}
