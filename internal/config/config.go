// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/addressbook/internal/book"
)

// Config holds all addressbook configuration.
type Config struct {
	Birthdays Birthdays `yaml:"birthdays"`
	Phones    Phones    `yaml:"phones"`
	UI        UI        `yaml:"ui"`
	Log       Log       `yaml:"log"`
}

// Birthdays holds upcoming-birthday settings.
type Birthdays struct {
	WindowDays int    `yaml:"window_days"` // Look-ahead in days, starting today
	LeapDay    string `yaml:"leap_day"`    // "feb28" | "mar1"
}

// Phones holds phone list settings.
type Phones struct {
	AllowDuplicates bool `yaml:"allow_duplicates"`
}

// UI holds session display settings.
type UI struct {
	Plain bool `yaml:"plain"` // Force the line prompt even on a TTY
}

// Log holds logging settings.
type Log struct {
	File  string `yaml:"file"` // Empty disables logging
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Birthdays: Birthdays{
			WindowDays: book.DefaultWindowDays,
			LeapDay:    string(book.LeapDayFeb28),
		},
		Phones: Phones{
			AllowDuplicates: true,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files and empty paths are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Birthdays.WindowDays < 1 {
		return fmt.Errorf("config: birthdays.window_days must be at least 1, got %d", c.Birthdays.WindowDays)
	}
	if _, err := book.ParseLeapDayPolicy(c.Birthdays.LeapDay); err != nil {
		return fmt.Errorf("config: birthdays.leap_day: %w", err)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRESSBOOK_WINDOW_DAYS, ADDRESSBOOK_LEAP_DAY,
// ADDRESSBOOK_PLAIN, ADDRESSBOOK_LOG_FILE, ADDRESSBOOK_LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ADDRESSBOOK_WINDOW_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADDRESSBOOK_WINDOW_DAYS %q: %w", v, err)
		}
		c.Birthdays.WindowDays = n
	}
	if v := os.Getenv("ADDRESSBOOK_LEAP_DAY"); v != "" {
		c.Birthdays.LeapDay = v
	}
	if v := os.Getenv("ADDRESSBOOK_PLAIN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid ADDRESSBOOK_PLAIN %q: %w", v, err)
		}
		c.UI.Plain = b
	}
	if v := os.Getenv("ADDRESSBOOK_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("ADDRESSBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// BookOptions translates the config into book options. Call Validate first.
func (c *Config) BookOptions() []book.Option {
	opts := []book.Option{book.WithWindow(c.Birthdays.WindowDays)}
	if p, err := book.ParseLeapDayPolicy(c.Birthdays.LeapDay); err == nil {
		opts = append(opts, book.WithLeapDayPolicy(p))
	}
	return opts
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Birthdays *rawBirthdays `yaml:"birthdays"`
	Phones    *rawPhones    `yaml:"phones"`
	UI        *rawUI        `yaml:"ui"`
	Log       *rawLog       `yaml:"log"`
}

type rawBirthdays struct {
	WindowDays *int    `yaml:"window_days"`
	LeapDay    *string `yaml:"leap_day"`
}

type rawPhones struct {
	AllowDuplicates *bool `yaml:"allow_duplicates"`
}

type rawUI struct {
	Plain *bool `yaml:"plain"`
}

type rawLog struct {
	File  *string `yaml:"file"`
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Birthdays != nil {
		if layer.Birthdays.WindowDays != nil {
			c.Birthdays.WindowDays = *layer.Birthdays.WindowDays
		}
		if layer.Birthdays.LeapDay != nil {
			c.Birthdays.LeapDay = *layer.Birthdays.LeapDay
		}
	}
	if layer.Phones != nil && layer.Phones.AllowDuplicates != nil {
		c.Phones.AllowDuplicates = *layer.Phones.AllowDuplicates
	}
	if layer.UI != nil && layer.UI.Plain != nil {
		c.UI.Plain = *layer.UI.Plain
	}
	if layer.Log != nil {
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
}
