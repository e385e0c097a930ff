// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format  string `yaml:"format"`
		Verbose bool   `yaml:"verbose"`
		Debug   bool   `yaml:"debug"`
		NoColor bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	// Compliance rule thresholds
	Compliance ComplianceConfig `yaml:"compliance"`

	// PII hashing settings
	Redaction struct {
		Salt       string `yaml:"salt"`
		HashMode   string `yaml:"hash_mode"`
		HashLength int    `yaml:"hash_length"`
	} `yaml:"redaction"`

	// Ingestion pipeline settings
	Ingest struct {
		Workers int `yaml:"workers"`
	} `yaml:"ingest"`

	// Analysis settings for the guarded analyzer
	Analysis struct {
		MaxRetries       int `yaml:"max_retries"`
		FailureThreshold int `yaml:"failure_threshold"`
	} `yaml:"analysis"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	Suppressions struct {
		File string `yaml:"file"`
	} `yaml:"suppressions"`

	Metrics struct {
		File string `yaml:"file"`
	} `yaml:"metrics"`

	// Profiles for different review scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// ComplianceConfig holds the R3 thresholds
type ComplianceConfig struct {
	MinContractValue float64 `yaml:"min_contract_value"`
	RecencyDays      int     `yaml:"recency_days"`
}

// Profile represents a named set of overrides
type Profile struct {
	Description string            `yaml:"description"`
	Format      string            `yaml:"format"`
	NoColor     bool              `yaml:"no_color"`
	Compliance  *ComplianceConfig `yaml:"compliance,omitempty"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Compliance.MinContractValue = 25000
	config.Compliance.RecencyDays = 1080
	config.Redaction.Salt = "getgsa_secure_salt_2024"
	config.Redaction.HashMode = "unified"
	config.Redaction.HashLength = 16
	config.Ingest.Workers = 4
	config.Analysis.MaxRetries = 2
	config.Analysis.FailureThreshold = 3
	config.Logging.Level = "info"
	config.Logging.Format = "console"
	config.Suppressions.File = ".getgsa-waivers.yaml"

	config.Profiles["audit"] = Profile{
		Description: "Machine-readable output for audit archives",
		Format:      "json",
		NoColor:     true,
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in the working directory,
// then the home directory, then the XDG config directory.
func FindConfigFile() string {
	for _, name := range []string{".getgsa.yaml", ".getgsa.yml", "getgsa.yaml"} {
		if fileExists(name) {
			return name
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	for _, name := range []string{".getgsa.yaml", ".getgsa.yml"} {
		if homeConfig := filepath.Join(home, name); fileExists(homeConfig) {
			return homeConfig
		}
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	if xdgConfigFile := filepath.Join(xdgConfig, "getgsa", "config.yaml"); fileExists(xdgConfigFile) {
		return xdgConfigFile
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names, sorted
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// ApplyProfile overlays the named profile onto the defaults
func (c *Config) ApplyProfile(name string) error {
	profile := c.GetProfile(name)
	if profile == nil {
		return fmt.Errorf("profile %q not found (available: %s)", name, strings.Join(c.ListProfiles(), ", "))
	}
	if profile.Format != "" {
		c.Defaults.Format = profile.Format
	}
	if profile.NoColor {
		c.Defaults.NoColor = true
	}
	if profile.Compliance != nil {
		if profile.Compliance.MinContractValue > 0 {
			c.Compliance.MinContractValue = profile.Compliance.MinContractValue
		}
		if profile.Compliance.RecencyDays > 0 {
			c.Compliance.RecencyDays = profile.Compliance.RecencyDays
		}
	}
	return nil
}

// ValidateConfig checks value ranges
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	switch config.Defaults.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q", config.Defaults.Format)
	}

	if config.Compliance.MinContractValue < 0 {
		return fmt.Errorf("compliance.min_contract_value must not be negative")
	}
	if config.Compliance.RecencyDays <= 0 {
		return fmt.Errorf("compliance.recency_days must be positive")
	}

	switch strings.ToLower(config.Redaction.HashMode) {
	case "unified", "legacy":
	default:
		return fmt.Errorf("redaction.hash_mode must be unified or legacy, got %q", config.Redaction.HashMode)
	}
	if config.Redaction.Salt == "" {
		return fmt.Errorf("redaction.salt must not be empty")
	}
	if config.Redaction.HashLength < 8 || config.Redaction.HashLength > 64 {
		return fmt.Errorf("redaction.hash_length must be between 8 and 64")
	}

	if config.Ingest.Workers < 1 {
		return fmt.Errorf("ingest.workers must be at least 1")
	}

	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches
// standard locations when configFile is empty). If loading fails, it
// returns the default configuration and the load error so the caller can
// report it.
func LoadConfigOrDefault(configFile string) (*Config, error) {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults; a missing or bad file must not stop the CLI
		cfg, _ = LoadConfig("")
		return cfg, err
	}
	return cfg, nil
}
