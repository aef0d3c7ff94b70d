package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the ctskit configuration
type Config struct {
	DefaultManifest string   `json:"defaultManifest,omitempty"`
	OpenCLInterop   *bool    `json:"openclInterop,omitempty"` // enables the interop guard's live variant
	Parallel        *bool    `json:"parallel,omitempty"`
	Concurrency     int      `json:"concurrency,omitempty"` // number of parallel cases
	Bail            *bool    `json:"bail,omitempty"`
	Verbose         *bool    `json:"verbose,omitempty"`
	NoColor         *bool    `json:"noColor,omitempty"`
	Reporters       []string `json:"reporters,omitempty"` // output reporters
	OutputDir       string   `json:"outputDir,omitempty"` // directory for output files
	HistoryDB       string   `json:"historyDB,omitempty"` // SQLite path for run history
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetOpenCLInterop returns the interop setting, defaulting to false
func (c *Config) GetOpenCLInterop() bool {
	return getBool(c.OpenCLInterop, false)
}

// GetParallel returns the parallel setting, defaulting to false
func (c *Config) GetParallel() bool {
	return getBool(c.Parallel, false)
}

// GetBail returns the bail setting, defaulting to false
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".ctskit.config.json",
	"ctskit.config.json",
	".ctskitrc",
	".ctskitrc.json",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.DefaultManifest != "" {
		result.DefaultManifest = other.DefaultManifest
	}
	if other.Concurrency > 0 {
		result.Concurrency = other.Concurrency
	}
	if other.OutputDir != "" {
		result.OutputDir = other.OutputDir
	}
	if other.HistoryDB != "" {
		result.HistoryDB = other.HistoryDB
	}

	// Boolean flags - only override if explicitly set in other config
	if other.OpenCLInterop != nil {
		result.OpenCLInterop = other.OpenCLInterop
	}
	if other.Parallel != nil {
		result.Parallel = other.Parallel
	}
	if other.Bail != nil {
		result.Bail = other.Bail
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	if len(other.Reporters) > 0 {
		result.Reporters = other.Reporters
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
