// ABOUTME: Configuration loading for the academy CLI
// ABOUTME: Loads TOML config from the XDG path with environment overrides

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the CLI configuration.
type Config struct {
	ServerURL string `toml:"server_url"`
	StatePath string `toml:"state_path"`
}

const defaultServerURL = "http://localhost:8080"

// configPath returns the CLI config file location.
// Priority: ACADEMY_CONFIG env var > XDG_CONFIG_HOME/academy/config.toml > ~/.config/academy/config.toml
func configPath() string {
	if envPath := os.Getenv("ACADEMY_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "academy", "config.toml")
}

// statePath returns the default location of the durable session database.
// Priority: XDG_DATA_HOME/academy > ~/.local/share/academy
func statePath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("data", "session.db") // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "academy", "session.db")
}

// LoadConfig reads the CLI config, filling defaults for anything unset.
// A missing config file is not an error; defaults and env vars apply.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	path := configPath()
	if data, err := os.ReadFile(path); err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if env := os.Getenv("ACADEMY_SERVER_URL"); env != "" {
		cfg.ServerURL = env
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	if cfg.StatePath == "" {
		cfg.StatePath = statePath()
	}

	return cfg, nil
}
