package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional on-disk scan configuration. Flags passed on
// the command line override the corresponding field when both are
// present.
type Config struct {
	Mode    string   `yaml:"mode"` // "strict" or "lenient"
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
	Format  string   `yaml:"format"` // "text" (default) or "json"
}

// LoadConfig reads and parses a YAML scan-config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
