// Package config loads ringgauge settings.
//
// Values are layered, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. the TOML file at [Path] or an explicit --config path
//  3. a .env file in the working directory, if present
//  4. environment variables (RINGGAUGE_ADDR, REDIS_ADDR, MONGO_URI,
//     MONGO_DATABASE, CACHE_DIR, CACHE_TTL, LOG_LEVEL)
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/ringgauge/pkg/errors"
	"github.com/matzehuels/ringgauge/pkg/pipeline"
	"github.com/matzehuels/ringgauge/pkg/settings"
)

const appName = "ringgauge"

// Environment variable names.
const (
	EnvAddr          = "RINGGAUGE_ADDR"
	EnvRedisAddr     = "REDIS_ADDR"
	EnvMongoURI      = "MONGO_URI"
	EnvMongoDatabase = "MONGO_DATABASE"
	EnvCacheDir      = "CACHE_DIR"
	EnvCacheTTL      = "CACHE_TTL"
	EnvLogLevel      = "LOG_LEVEL"
)

// Config is the full configuration.
type Config struct {
	LogLevel string            `toml:"log_level"`
	Defaults settings.Defaults `toml:"defaults"`
	Render   Render            `toml:"render"`
	Server   Server            `toml:"server"`
	Cache    Cache             `toml:"cache"`
	Store    Store             `toml:"store"`
}

// Render holds output defaults.
type Render struct {
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Formats  []string `toml:"formats"`
	PNGScale float64  `toml:"png_scale"`
}

// Server holds HTTP server settings.
type Server struct {
	Addr        string   `toml:"addr"`
	CORSOrigins []string `toml:"cors_origins"`
	ReadTimeout Duration `toml:"read_timeout"`
}

// Cache selects the artifact cache. RedisAddr wins over Dir when set.
type Cache struct {
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	Disabled  bool     `toml:"disabled"`
}

// Store selects the snapshot store. An empty MongoURI means in-memory.
type Store struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Duration is a time.Duration written as "15s" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Defaults: settings.Builtin(),
		Render: Render{
			Width:    200,
			Height:   200,
			Formats:  []string{"svg"},
			PNGScale: 2,
		},
		Server: Server{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
			ReadTimeout: Duration{15 * time.Second},
		},
		Cache: Cache{
			TTL: Duration{7 * 24 * time.Hour},
		},
		Store: Store{
			Database:   "ringgauge",
			Collection: "snapshots",
		},
	}
}

// Path returns the default config file location
// ($XDG_CONFIG_HOME/ringgauge/config.toml or ~/.config/ringgauge/config.toml).
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default cache directory
// ($XDG_CACHE_HOME/ringgauge or ~/.cache/ringgauge).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load builds the configuration. An empty path uses [Path]; a missing
// default file is fine, a missing explicit file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := decodeFile(path, &cfg, explicit); err != nil {
			return Config{}, err
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode reads TOML from r on top of the defaults. Environment variables
// are not consulted.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config, explicit bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return errors.New(errors.ErrCodeNotFound, "config file not found: %s", path)
		}
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Store.MongoURI = v
	}
	if v := os.Getenv(EnvMongoDatabase); v != "" {
		c.Store.Database = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		if err := c.Cache.TTL.UnmarshalText([]byte(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvCacheTTL)
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "log_level: unknown level %q", c.LogLevel)
	}
	if err := c.Defaults.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "defaults")
	}
	if err := errors.ValidateViewport(c.Render.Width, c.Render.Height); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render")
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if c.Render.PNGScale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.png_scale must be positive")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// Encode writes the configuration as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
