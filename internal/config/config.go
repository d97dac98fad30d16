// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"weekendly/internal/logger"
	"weekendly/internal/timegrid"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	Viewport ViewportConfig `toml:"viewport"`
	UI       UIConfig       `toml:"ui"`
	Logging  logger.Config  `toml:"logging"`
}

// ScheduleConfig holds the weekend day window settings.
type ScheduleConfig struct {
	DayStart string `toml:"day_start"` // e.g., "07:00"
	DayEnd   string `toml:"day_end"`   // e.g., "23:00"
	SlotSize int    `toml:"slot_size"` // minutes, e.g., 15
}

// StorageConfig holds persistence settings. DBPath is the structured
// SQLite backend; FallbackDir is the flat-key directory used when the
// structured backend cannot be opened.
type StorageConfig struct {
	DBPath      string `toml:"db_path"`
	FallbackDir string `toml:"fallback_dir"`
}

// ViewportConfig holds list windowing settings.
type ViewportConfig struct {
	Threshold int `toml:"threshold"` // item count above which windowing activates
	Overscan  int `toml:"overscan"`  // extra items rendered beyond the visible range
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // plan theme preselected at startup
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			DayStart: "07:00",
			DayEnd:   "23:00",
			SlotSize: timegrid.DefaultSlotSize,
		},
		Storage: StorageConfig{
			DBPath:      filepath.Join(defaultDataDir(), "weekendly.db"),
			FallbackDir: filepath.Join(defaultDataDir(), "kv"),
		},
		Viewport: ViewportConfig{
			Threshold: 20,
			Overscan:  3,
		},
		UI: UIConfig{
			Theme: "lazy",
		},
		Logging: logger.Config{
			Level:      "info",
			Format:     "console",
			OutputPath: filepath.Join(defaultDataDir(), "weekendly.log"),
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "weekendly")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "weekendly", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand paths
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.FallbackDir = expandPath(cfg.Storage.FallbackDir)

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEEKENDLY_DAY_START"); v != "" {
		cfg.Schedule.DayStart = v
	}
	if v := os.Getenv("WEEKENDLY_DAY_END"); v != "" {
		cfg.Schedule.DayEnd = v
	}
	if v := os.Getenv("WEEKENDLY_SLOT_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Schedule.SlotSize = n
		}
	}
	if v := os.Getenv("WEEKENDLY_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("WEEKENDLY_FALLBACK_DIR"); v != "" {
		cfg.Storage.FallbackDir = v
	}
	if v := os.Getenv("WEEKENDLY_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("WEEKENDLY_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WEEKENDLY_LOG_PATH"); v != "" {
		cfg.Logging.OutputPath = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	start, err := timegrid.ToMinutes(c.Schedule.DayStart)
	if err != nil {
		return fmt.Errorf("day_start: %w", err)
	}
	end, err := timegrid.ToMinutes(c.Schedule.DayEnd)
	if err != nil {
		return fmt.Errorf("day_end: %w", err)
	}
	if start >= end {
		return errors.New("day_start must be before day_end")
	}
	if c.Schedule.SlotSize <= 0 || (end-start)%c.Schedule.SlotSize != 0 {
		return errors.New("slot_size must be positive and divide the day window evenly")
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Storage.FallbackDir == "" {
		return errors.New("fallback_dir must be set")
	}
	if c.Viewport.Threshold < 0 || c.Viewport.Overscan < 0 {
		return errors.New("viewport threshold and overscan must not be negative")
	}
	return nil
}

// Grid builds the time grid from the configured day window.
func (c *Config) Grid() timegrid.Grid {
	start, _ := timegrid.ToMinutes(c.Schedule.DayStart)
	end, _ := timegrid.ToMinutes(c.Schedule.DayEnd)
	return timegrid.Grid{
		DayStart: start,
		DayEnd:   end,
		SlotSize: c.Schedule.SlotSize,
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
