// Package config loads the cora configuration from defaults, a TOML file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Tiliavir/cora-hours/internal/shift"
)

// Storage backends.
const (
	BackendFiles  = "files"
	BackendSQLite = "sqlite"
)

// Config is the root configuration, stored in ~/.config/cora/config.toml.
type Config struct {
	API      APIConfig      `toml:"api"`
	Session  SessionConfig  `toml:"session"`
	Calendar CalendarConfig `toml:"calendar"`
	Storage  StorageConfig  `toml:"storage"`
}

// APIConfig holds the CORA API connection.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`   // empty falls back to the stored token
	Timeout string `toml:"timeout"` // Go duration, e.g. "15s"
}

// SessionConfig identifies the consultant registering hours.
type SessionConfig struct {
	ConsultantID int64    `toml:"consultor_id"`
	Login        string   `toml:"usuario"`
	Name         string   `toml:"nombre"`
	Role         string   `toml:"rol"`
	Shift        string   `toml:"horario"` // HH:MM-HH:MM
	Modules      []string `toml:"modulos"`
}

// CalendarConfig holds the attendance targets.
type CalendarConfig struct {
	DailyTargetHours   float64  `toml:"daily_target_hours"`
	ReducedTargetHours float64  `toml:"reduced_target_hours"`
	ReducedTargetUsers []string `toml:"reduced_target_users"`
}

// StorageConfig selects the entry cache.
type StorageConfig struct {
	Backend string `toml:"backend"` // "files" or "sqlite"
	Dir     string `toml:"dir"`
	DBPath  string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
			Timeout: "15s",
		},
		Session: SessionConfig{
			Role: "CONSULTOR",
		},
		Calendar: CalendarConfig{
			DailyTargetHours:   9,
			ReducedTargetHours: 8,
		},
		Storage: StorageConfig{
			Backend: BackendFiles,
			Dir:     "~/.cora/entries",
			DBPath:  "~/.cora/cora.db",
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "cora", "config.toml")
}

// LoadFrom starts with defaults, overlays the file at path if it exists,
// then applies environment overrides and validates the result.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.Dir = expandPath(cfg.Storage.Dir)
	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies CORA_* environment variables on top of the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CORA_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("CORA_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("CORA_USER"); v != "" {
		cfg.Session.Login = v
	}
	if v := os.Getenv("CORA_CONSULTANT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Session.ConsultantID = id
		}
	}
	if v := os.Getenv("CORA_SHIFT"); v != "" {
		cfg.Session.Shift = v
	}
	if v := os.Getenv("CORA_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("CORA_DATA_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("CORA_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
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
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
		}
	}
	if c.API.Timeout != "" {
		d, err := time.ParseDuration(c.API.Timeout)
		if err != nil || d < 0 {
			return fmt.Errorf("api.timeout must be a duration like \"15s\", got %q", c.API.Timeout)
		}
	}
	if c.Session.ConsultantID < 0 {
		return errors.New("session.consultor_id must not be negative")
	}
	if c.Session.Shift != "" {
		if _, ok := shift.ParseShiftRange(c.Session.Shift); !ok {
			return fmt.Errorf("session.horario must be in HH:MM-HH:MM format, got %q", c.Session.Shift)
		}
	}
	if c.Calendar.DailyTargetHours <= 0 || c.Calendar.DailyTargetHours > 24 {
		return fmt.Errorf("calendar.daily_target_hours must be in (0, 24], got %v", c.Calendar.DailyTargetHours)
	}
	if c.Calendar.ReducedTargetHours <= 0 || c.Calendar.ReducedTargetHours > 24 {
		return fmt.Errorf("calendar.reduced_target_hours must be in (0, 24], got %v", c.Calendar.ReducedTargetHours)
	}
	switch c.Storage.Backend {
	case BackendFiles:
		if c.Storage.Dir == "" {
			return errors.New("storage.dir must be set")
		}
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("storage.db_path must be set")
		}
	default:
		return fmt.Errorf("storage.backend must be %q or %q, got %q", BackendFiles, BackendSQLite, c.Storage.Backend)
	}
	return nil
}

// Timeout returns the API timeout; zero means none.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// configTemplate is the annotated config written by WriteTemplate.
const configTemplate = `# cora configuration
#
# Every setting is optional. Environment variables override the file:
# CORA_API_URL, CORA_API_TOKEN, CORA_USER, CORA_CONSULTANT_ID, CORA_SHIFT,
# CORA_STORAGE_BACKEND, CORA_DATA_DIR, CORA_DB_PATH.

[api]
# Base URL of the CORA API, including the /api prefix.
base_url = "http://localhost:5000/api"
# Bearer token. Leave empty to use the one stored with: cora auth set-token
token = ""
timeout = "15s"

[session]
# Who registers hours. The id and login must match your CORA consultant.
consultor_id = 0
usuario = ""
nombre = ""
rol = "CONSULTOR"
# Working shift used to flag extra hours, e.g. "08:00-18:00" or "22:00-06:00".
horario = ""
# First module is the default for new entries.
modulos = []

[calendar]
daily_target_hours = 9.0
reduced_target_hours = 8.0
# Logins that work against the reduced target.
reduced_target_users = []

[storage]
# "files" keeps one JSON file per day, "sqlite" a single database.
backend = "files"
dir = "~/.cora/entries"
db_path = "~/.cora/cora.db"
`

// WriteTemplate writes the annotated default config to path. An existing
// file is left alone unless force is set.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
