package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backend names accepted in Config.Backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// ConfigEnv overrides the config file location.
const ConfigEnv = "MYSTART_CONFIG"

// Config holds application configuration.
type Config struct {
	Backend               string   `json:"backend"`
	DataDir               string   `json:"dataDir"`
	AIModel               string   `json:"aiModel"`
	SuggestTimeoutSeconds int      `json:"suggestTimeoutSeconds"`
	CullExcludeDomains    []string `json:"cullExcludeDomains"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Backend:               BackendJSON,
		DataDir:               "",
		AIModel:               "claude-haiku-4-5",
		SuggestTimeoutSeconds: 10,
		CullExcludeDomains:    []string{"localhost"},
	}
}

// SuggestTimeout returns the suggestion timeout as a duration.
func (c Config) SuggestTimeout() time.Duration {
	return time.Duration(c.SuggestTimeoutSeconds) * time.Second
}

// ResolveDataDir returns the data directory, expanding a leading "~".
// An empty DataDir resolves to ~/.config/mystart.
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir == "" {
		return DefaultDir()
	}
	if c.DataDir == "~" || strings.HasPrefix(c.DataDir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, strings.TrimPrefix(c.DataDir, "~")), nil
	}
	return c.DataDir, nil
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			if saveErr := SaveConfig(path, &config); saveErr != nil {
				// Non-fatal: return defaults even if save fails
				return &config, nil
			}
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.Backend == "" {
		config.Backend = defaults.Backend
	}
	if config.AIModel == "" {
		config.AIModel = defaults.AIModel
	}
	if config.SuggestTimeoutSeconds <= 0 {
		config.SuggestTimeoutSeconds = defaults.SuggestTimeoutSeconds
	}
	if config.CullExcludeDomains == nil {
		config.CullExcludeDomains = defaults.CullExcludeDomains
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultDir returns ~/.config/mystart.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "mystart"), nil
}

// DefaultConfigFilePath returns $MYSTART_CONFIG, or ~/.config/mystart/config.json.
func DefaultConfigFilePath() (string, error) {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}
