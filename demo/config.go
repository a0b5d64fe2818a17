package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goensemble/ensemble"
	"github.com/sartorproj/goensemble/synthetic"
)

// Config holds the demo settings read from YAML.
type Config struct {
	Synthetic *synthetic.Config `yaml:"synthetic"`
	MinRuns   int               `yaml:"min_runs"` // threshold used by prune and normalize
	Output    string            `yaml:"output"`   // directory receiving plots and CSV files
	Format    string            `yaml:"format"`   // image format, e.g. png or svg
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Synthetic: synthetic.DefaultConfig(),
		MinRuns:   ensemble.DefaultMinRuns,
		Output:    "out",
		Format:    "png",
	}
}

// LoadConfig reads path over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Synthetic == nil {
		cfg.Synthetic = synthetic.DefaultConfig()
	}
	if err := cfg.Synthetic.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
