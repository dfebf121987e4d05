package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Gateways    []Gateway `json:"gateways"`
	KeystoreDir string    `json:"keystore_dir,omitempty"`
	Logger      bool      `json:"logger"`
}

// Gateway represents a sweepstakes process endpoint
type Gateway struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// ActiveGateway returns the active endpoint URL. The SWEEPS_RPC_URL
// environment variable overrides the config file.
func (c Config) ActiveGateway() string {
	if env := os.Getenv("SWEEPS_RPC_URL"); env != "" {
		return env
	}
	for _, gw := range c.Gateways {
		if gw.Active {
			return gw.URL
		}
	}
	if len(c.Gateways) > 0 {
		return c.Gateways[0].URL
	}
	return ""
}

// Keystore returns the wallet key directory, defaulting to a dot
// directory in the user's home.
func (c Config) Keystore() string {
	if c.KeystoreDir != "" {
		return c.KeystoreDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sweepstakes-keystore"
	}
	return filepath.Join(home, ".sweepstakes-keystore")
}

// DefaultPath returns the config file location in the user's home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sweepstakes-tui.json"
	}
	return filepath.Join(home, ".sweepstakes-tui.json")
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Gateways: []Gateway{
			{
				Name:   "Local Process",
				URL:    "http://127.0.0.1:8545",
				Active: true,
			},
		},
		Logger: false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	// Try to read existing config
	data, err := os.ReadFile(path)
	if err != nil {
		// File doesn't exist, create default
		cfg := DefaultConfig()
		Save(path, cfg)
		return cfg
	}

	// Parse existing config
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Invalid config, return default
		return DefaultConfig()
	}

	return cfg
}
