package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"ngramlp/internal/adapter/converter"
)

// Config holds all configuration for the ngramlp tool.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Input   InputConfig   `yaml:"input"`
	Store   StoreConfig   `yaml:"store"`
	Score   ScoreConfig   `yaml:"score"`
	Logging LoggingConfig `yaml:"logging"`
}

// ConvertConfig holds count-table conversion settings.
type ConvertConfig struct {
	Precision int    `yaml:"precision"`
	Base      string `yaml:"base"`   // "e" or "10"
	Strict    bool   `yaml:"strict"` // reject lines with more than two fields
}

// InputConfig selects table files when the input is a directory.
type InputConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// StoreConfig holds the saved table location.
type StoreConfig struct {
	Path string `yaml:"path"` // relative paths resolve against the root dir
}

// ScoreConfig holds text scoring settings.
type ScoreConfig struct {
	Floor     float64 `yaml:"floor"` // 0 = derive from table total
	Uppercase bool    `yaml:"uppercase"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			Precision: 4,
			Base:      "e",
			Strict:    false,
		},
		Input: InputConfig{
			Includes: []string{"**/*.txt"},
			Excludes: []string{"**/.git/**", "**/.ngramlp/**"},
		},
		Store: StoreConfig{
			Path: filepath.Join(".ngramlp", "table.db"),
		},
		Score: ScoreConfig{
			Floor:     0,
			Uppercase: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for ngramlp.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "ngramlp.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".ngramlp", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if c.Convert.Precision < 0 {
		return fmt.Errorf("convert.precision must be >= 0, got %d", c.Convert.Precision)
	}
	if _, err := converter.ParseBase(c.Convert.Base); err != nil {
		return fmt.Errorf("convert.base must be \"e\" or \"10\": %w", err)
	}
	if c.Score.Floor > 0 {
		return fmt.Errorf("score.floor must be <= 0, got %v", c.Score.Floor)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StorePath resolves the table database path against dir.
func (c *Config) StorePath(dir string) string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(dir, c.Store.Path)
}

// EnsureStoreDir ensures the directory holding path exists.
func EnsureStoreDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}
