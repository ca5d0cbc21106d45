// Package config loads the server configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when FIXTURES_CONFIG is unset.
const DefaultPath = "mcp-go-fixtures.yaml"

// Config holds all server configuration.
type Config struct {
	Name     string `yaml:"name"`
	LogLevel string `yaml:"log_level"`

	Files  FilesConfig  `yaml:"files"`
	Parse  ParseConfig  `yaml:"parse"`
	Stress StressConfig `yaml:"stress"`

	// Users seeded into the user database at startup.
	Users []UserSeed `yaml:"users"`
}

// FilesConfig restricts the read_file tool.
type FilesConfig struct {
	Root     string `yaml:"root"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// ParseConfig bounds parse_number when the caller gives no range.
type ParseConfig struct {
	Min int32 `yaml:"min"`
	Max int32 `yaml:"max"`
}

// StressConfig caps counter_stress arguments.
type StressConfig struct {
	MaxWorkers   int `yaml:"max_workers"`
	MaxPerWorker int `yaml:"max_per_worker"`
}

// UserSeed is one entry of the users list.
type UserSeed struct {
	ID    uint64 `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:     "Go Fixtures MCP",
		LogLevel: "info",
		Files: FilesConfig{
			Root:     ".",
			MaxBytes: 1 << 20,
		},
		Parse: ParseConfig{
			Min: math.MinInt32,
			Max: math.MaxInt32,
		},
		Stress: StressConfig{
			MaxWorkers:   64,
			MaxPerWorker: 10000,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv loads the file named by FIXTURES_CONFIG, or DefaultPath.
func FromEnv() (*Config, error) {
	path := os.Getenv("FIXTURES_CONFIG")
	if path == "" {
		path = DefaultPath
	}
	return Load(path)
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	if c.Parse.Min > c.Parse.Max {
		return fmt.Errorf("parse.min %d is greater than parse.max %d", c.Parse.Min, c.Parse.Max)
	}
	if c.Files.MaxBytes <= 0 {
		return fmt.Errorf("files.max_bytes must be positive, got %d", c.Files.MaxBytes)
	}
	if c.Stress.MaxWorkers <= 0 || c.Stress.MaxPerWorker <= 0 {
		return errors.New("stress limits must be positive")
	}
	seen := make(map[uint64]bool, len(c.Users))
	for _, u := range c.Users {
		if seen[u.ID] {
			return fmt.Errorf("duplicate seeded user id %d", u.ID)
		}
		seen[u.ID] = true
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if root := os.Getenv("FIXTURES_FILES_ROOT"); root != "" {
		c.Files.Root = root
	}
	if lvl := os.Getenv("FIXTURES_LOG_LEVEL"); lvl != "" {
		c.LogLevel = lvl
	}
	if v := os.Getenv("FIXTURES_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid FIXTURES_MAX_BYTES: %w", err)
		}
		c.Files.MaxBytes = n
	}
	return nil
}
