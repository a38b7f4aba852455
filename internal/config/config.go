package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPath is the environment variable naming an explicit config file.
// A .env file in the working directory is honored when present.
const EnvPath = "DIARYMD_CONFIG"

// Config represents the top-level diarymd configuration.
type Config struct {
	// Diaries are the markdown files consulted when no --diary flag is
	// given.
	Diaries         []string  `yaml:"diaries,omitempty"`
	DefaultCurrency string    `yaml:"default_currency"`
	DefaultSection  string    `yaml:"default_section"`
	ToleranceDays   int       `yaml:"tolerance_days"`
	Output          string    `yaml:"output,omitempty"` // non-reconciled.csv location
	Git             GitConfig `yaml:"git"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name,omitempty"`
	AuthorEmail string `yaml:"author_email,omitempty"`
}

// Load reads a config file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.DefaultCurrency == "" {
		c.DefaultCurrency = "EUR"
	}
	if c.DefaultSection == "" {
		c.DefaultSection = "Expenses"
	}
	if c.Output == "" {
		c.Output = "non-reconciled.csv"
	}
}

// Resolve locates the effective config file: an explicit path wins, then
// the DIARYMD_CONFIG environment variable (after loading .env if present),
// then ~/.config/diarymd/config.yaml. When no file exists anywhere,
// Resolve returns Default() and an empty path.
func Resolve(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}

	// A missing .env is not an error.
	_ = godotenv.Load()

	if path := os.Getenv(EnvPath); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), "", nil
	}
	path := filepath.Join(home, ".config", "diarymd", "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}
