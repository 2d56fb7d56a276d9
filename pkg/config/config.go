// Package config provides configuration loading and management for
// dicomfilter. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dicomfilter/pkg/imagefilter"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Windowing parameters
	Windowing struct {
		// Level is the center of the intensity window in Hounsfield units
		Level int `yaml:"level"`

		// Width is the span of the intensity window in Hounsfield units
		Width int `yaml:"width"`

		// Preset selects a named window from Presets; overrides Level and
		// Width when set
		Preset string `yaml:"preset"`
	} `yaml:"windowing"`

	// Presets maps clinical window names to level/width pairs
	Presets map[string]WindowPreset `yaml:"presets"`

	// Morphology parameters
	Morphology struct {
		// KernelX and KernelY are the structuring-element dimensions
		KernelX int `yaml:"kernelX"`
		KernelY int `yaml:"kernelY"`

		// Iterations is how many times the operation is repeated
		Iterations int `yaml:"iterations"`
	} `yaml:"morphology"`

	// Output parameters
	Output struct {
		// Format selects the image encoding for rendered output (png or jpeg)
		Format string `yaml:"format"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// WindowPreset is a named level/width pair
type WindowPreset struct {
	Level int `yaml:"level"`
	Width int `yaml:"width"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default windowing parameters (soft tissue)
	def := imagefilter.DefaultWindowingParams()
	cfg.Windowing.Level = def.Level
	cfg.Windowing.Width = def.Width

	// Common clinical CT windows
	cfg.Presets = map[string]WindowPreset{
		"soft-tissue": {Level: 40, Width: 400},
		"brain":       {Level: 40, Width: 80},
		"lung":        {Level: -600, Width: 1500},
		"bone":        {Level: 400, Width: 1800},
		"liver":       {Level: 60, Width: 160},
	}

	// Set default morphology parameters
	morph := imagefilter.DefaultMorphologyParams()
	cfg.Morphology.KernelX = morph.KernelX
	cfg.Morphology.KernelY = morph.KernelY
	cfg.Morphology.Iterations = morph.Iterations

	// Set default output parameters
	cfg.Output.Format = "png"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// WindowingParams resolves the effective windowing parameters, applying the
// named preset if one is selected
func (c *Config) WindowingParams() (imagefilter.WindowingParams, error) {
	if c.Windowing.Preset != "" {
		preset, ok := c.Presets[c.Windowing.Preset]
		if !ok {
			return imagefilter.WindowingParams{}, fmt.Errorf("unknown window preset %q", c.Windowing.Preset)
		}
		return imagefilter.WindowingParams{Level: preset.Level, Width: preset.Width}, nil
	}
	return imagefilter.WindowingParams{Level: c.Windowing.Level, Width: c.Windowing.Width}, nil
}

// MorphologyParams returns the configured morphology parameters
func (c *Config) MorphologyParams() imagefilter.MorphologyParams {
	return imagefilter.MorphologyParams{
		KernelX:    c.Morphology.KernelX,
		KernelY:    c.Morphology.KernelY,
		Iterations: c.Morphology.Iterations,
	}
}
