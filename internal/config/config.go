// ABOUTME: Nutriplan configuration management with backend selection.
// ABOUTME: Layers a JSON config file, a .env file and NUTRIPLAN_* environment overrides.

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/charmbracelet/log"
	"github.com/harperreed/nutriplan/internal/clock"
	"github.com/harperreed/nutriplan/internal/models"
	"github.com/harperreed/nutriplan/internal/storage"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendMarkdown = "markdown"
	BackendPostgres = "postgres"
	BackendCharm    = "charm"
)

// Defaults applied when a setting is empty.
const (
	DefaultWakeTime       = "07:00"
	DefaultBedTime        = "23:00"
	DefaultMealsPerDay    = 3
	DefaultAddr           = ":8080"
	DefaultRateLimitRPS   = 5.0
	DefaultRateLimitBurst = 10
	DefaultLogLevel       = "info"
	DefaultCharmHost      = "charm.2389.dev"
)

// Config stores nutriplan configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "markdown",
	// "postgres" or "charm".
	Backend string `json:"backend,omitempty" env:"NUTRIPLAN_BACKEND"`

	// DataDir is the root directory for data storage.
	// SQLite puts nutriplan.db here. Markdown puts a plans/ folder here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/nutriplan.
	DataDir string `json:"data_dir,omitempty" env:"NUTRIPLAN_DATA_DIR"`

	// PostgresDSN is the connection string used by the postgres backend.
	PostgresDSN string `json:"postgres_dsn,omitempty" env:"NUTRIPLAN_POSTGRES_DSN"`

	// CharmHost is the Charm server synced by the charm backend.
	CharmHost string `json:"charm_host,omitempty" env:"NUTRIPLAN_CHARM_HOST"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"log_level,omitempty" env:"NUTRIPLAN_LOG_LEVEL"`

	Defaults Defaults `json:"defaults"`
	Server   Server   `json:"server"`
}

// Defaults are profile values used when a command omits them.
type Defaults struct {
	WakeTime    string `json:"wake_time,omitempty" env:"NUTRIPLAN_WAKE_TIME"`
	BedTime     string `json:"bed_time,omitempty" env:"NUTRIPLAN_BED_TIME"`
	MealsPerDay int    `json:"meals_per_day,omitempty" env:"NUTRIPLAN_MEALS_PER_DAY"`
}

// Server configures the HTTP API.
type Server struct {
	Addr           string   `json:"addr,omitempty" env:"NUTRIPLAN_ADDR"`
	RateLimitRPS   float64  `json:"rate_limit_rps,omitempty" env:"NUTRIPLAN_RATE_LIMIT_RPS"`
	RateLimitBurst int      `json:"rate_limit_burst,omitempty" env:"NUTRIPLAN_RATE_LIMIT_BURST"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" env:"NUTRIPLAN_ALLOWED_ORIGINS" envSeparator:","`
	// TrustProxy honours X-Forwarded-For. Enable only behind a reverse proxy.
	TrustProxy bool `json:"trust_proxy,omitempty" env:"NUTRIPLAN_TRUST_PROXY"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetCharmHost returns the Charm server host, defaulting to charm.2389.dev.
func (c *Config) GetCharmHost() string {
	if c.CharmHost == "" {
		return DefaultCharmHost
	}
	return c.CharmHost
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() log.Level {
	if c.LogLevel == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// GetWakeTime returns the default wake time.
func (c *Config) GetWakeTime() string {
	if c.Defaults.WakeTime == "" {
		return DefaultWakeTime
	}
	return c.Defaults.WakeTime
}

// GetBedTime returns the default bed time.
func (c *Config) GetBedTime() string {
	if c.Defaults.BedTime == "" {
		return DefaultBedTime
	}
	return c.Defaults.BedTime
}

// GetMealsPerDay returns the default number of meals.
func (c *Config) GetMealsPerDay() int {
	if c.Defaults.MealsPerDay <= 0 {
		return DefaultMealsPerDay
	}
	return c.Defaults.MealsPerDay
}

// GetAddr returns the HTTP listen address.
func (c *Config) GetAddr() string {
	if c.Server.Addr == "" {
		return DefaultAddr
	}
	return c.Server.Addr
}

// GetRateLimit returns requests per second and burst for each client.
func (c *Config) GetRateLimit() (float64, int) {
	rps, burst := c.Server.RateLimitRPS, c.Server.RateLimitBurst
	if rps <= 0 {
		rps = DefaultRateLimitRPS
	}
	if burst <= 0 {
		burst = DefaultRateLimitBurst
	}
	return rps, burst
}

// GetAllowedOrigins returns CORS origins, defaulting to any origin.
func (c *Config) GetAllowedOrigins() []string {
	if len(c.Server.AllowedOrigins) == 0 {
		return []string{"*"}
	}
	return c.Server.AllowedOrigins
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	switch c.GetBackend() {
	case BackendSQLite, BackendMarkdown, BackendCharm:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres backend requires postgres_dsn")
		}
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}

	if _, err := clock.Parse(c.GetWakeTime()); err != nil {
		return fmt.Errorf("defaults.wake_time: %w", err)
	}
	if _, err := clock.Parse(c.GetBedTime()); err != nil {
		return fmt.Errorf("defaults.bed_time: %w", err)
	}
	if m := c.GetMealsPerDay(); m > models.MaxMealsPerDay {
		return fmt.Errorf("defaults.meals_per_day must be between %d and %d", models.MinMealsPerDay, models.MaxMealsPerDay)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	return nil
}

// NewLogger returns a charm logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           c.GetLogLevel(),
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	return c.OpenBackend(c.GetBackend())
}

// OpenBackend opens the named backend using this config's locations.
func (c *Config) OpenBackend(backend string) (storage.Repository, error) {
	dataDir := c.GetDataDir()

	switch backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, storage.DBFileName))
	case BackendMarkdown:
		return storage.NewMarkdownStore(dataDir)
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return nil, errors.New("postgres backend requires postgres_dsn")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.OpenPostgres(ctx, c.PostgresDSN)
	case BackendCharm:
		return storage.OpenCharm(c.GetCharmHost(), storage.CharmDBName)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "nutriplan", "config.json")
}

// LoadDotEnv loads environment variables from .env files without overriding
// variables already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads config from disk and applies NUTRIPLAN_* environment overrides.
func Load() (*Config, error) {
	cfg, err := loadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// ProfileDefaults returns the request defaults applied to incomplete profiles.
func (c *Config) ProfileDefaults() models.ProfileRequest {
	return models.ProfileRequest{
		WakeTime:    c.GetWakeTime(),
		BedTime:     c.GetBedTime(),
		MealsPerDay: c.GetMealsPerDay(),
	}
}
