package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Destination DestinationConfig `yaml:"destination"`
	Export      ExportConfig      `yaml:"export"`
}

type DestinationConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type ExportConfig struct {
	StateDir string `yaml:"state_dir"`
	DryRun   bool   `yaml:"dry_run"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides:
//
//	PLANSYNC_DEST_URL, PLANSYNC_DEST_API_KEY,
//	PLANSYNC_STATE_DIR, PLANSYNC_DRY_RUN
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLANSYNC_DEST_URL"); v != "" {
		cfg.Destination.URL = v
	}
	if v := os.Getenv("PLANSYNC_DEST_API_KEY"); v != "" {
		cfg.Destination.APIKey = v
	}
	if v := os.Getenv("PLANSYNC_STATE_DIR"); v != "" {
		cfg.Export.StateDir = v
	}
	if v := os.Getenv("PLANSYNC_DRY_RUN"); v == "1" || v == "true" {
		cfg.Export.DryRun = true
	}
}

func (c *Config) validate() error {
	if c.Destination.URL == "" && !c.Export.DryRun {
		return fmt.Errorf("destination.url is required unless export.dry_run is set")
	}
	return nil
}
