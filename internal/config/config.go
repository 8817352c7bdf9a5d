// Package config loads posh's optional, non-spec-mandated settings
// file. It never overrides the shell's required environment-variable
// contract (PATH, HOME, HISTFILE) — it only fills in ambient defaults
// the environment leaves unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds ambient shell preferences with no bearing on the
// builtins' observable contracts.
type Config struct {
	HistorySize int `yaml:"history_size"`
}

const defaultHistorySize = 1000

// Default returns the built-in settings used when no config file
// exists.
func Default() *Config {
	return &Config{HistorySize: defaultHistorySize}
}

// Dir returns ~/.posh, creating nothing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".posh"), nil
}

// Path returns ~/.posh/config.yaml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file if present, falling back to Default on
// ENOENT.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to ~/.posh/config.yaml, creating the directory if
// needed.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	path, err := Path()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
