package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level shulebooks.yaml configuration.
type Config struct {
	School    SchoolConfig    `yaml:"school"`
	Fiscal    FiscalConfig    `yaml:"fiscal"`
	Database  DatabaseConfig  `yaml:"database"`
	Reminders RemindersConfig `yaml:"reminders"`
}

// SchoolConfig identifies the school and its reporting currency.
type SchoolConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// DatabaseConfig locates the ledger database inside the books directory.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// RemindersConfig controls the receivable reminder scan.
type RemindersConfig struct {
	LeadDays int `yaml:"lead_days"`
}

// Load reads a shulebooks.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
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

// Default returns a Config with sensible defaults for a new school. The
// Kenyan school year runs January to December, so the fiscal year follows
// the calendar year.
func Default(schoolName string) *Config {
	return &Config{
		School: SchoolConfig{
			Name:     schoolName,
			Currency: "KES",
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Database: DatabaseConfig{
			Path: "books.db",
		},
		Reminders: RemindersConfig{
			LeadDays: 3,
		},
	}
}
