package io

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"
)

// ClientConfig is the validated client configuration loaded from a file.
type ClientConfig struct {
	APIURL        string
	DBPath        string
	SlowThreshold time.Duration
}

// ConfigYAMLRepository loads client configuration from YAML files.
type ConfigYAMLRepository struct {
	fs fs.FS
}

// NewConfigYAMLRepository creates a new YAML config repository.
func NewConfigYAMLRepository(filesystem fs.FS) *ConfigYAMLRepository {
	return &ConfigYAMLRepository{fs: filesystem}
}

// GetConfig loads the client configuration from a YAML file and returns a
// validated config.
func (r *ConfigYAMLRepository) GetConfig(ctx context.Context, path string) (ClientConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return ClientConfig{}, ctx.Err()
	}

	var cfg clientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	out, err := cfg.toModel()
	if err != nil {
		return ClientConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return out, nil
}

// clientConfig represents the YAML structure of the configuration file.
type clientConfig struct {
	APIURL        string `yaml:"api_url"`
	DBPath        string `yaml:"db_path"`
	SlowThreshold string `yaml:"slow_threshold"`
}

func (c clientConfig) toModel() (ClientConfig, error) {
	out := ClientConfig{
		APIURL: c.APIURL,
		DBPath: c.DBPath,
	}

	if c.SlowThreshold != "" {
		d, err := time.ParseDuration(c.SlowThreshold)
		if err != nil {
			return ClientConfig{}, fmt.Errorf("slow_threshold is not a valid duration: %w", err)
		}
		if d <= 0 {
			return ClientConfig{}, fmt.Errorf("slow_threshold must be positive")
		}
		out.SlowThreshold = d
	}

	return out, nil
}
