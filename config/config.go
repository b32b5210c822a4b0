// Package config loads the inkwell configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level maps to the slog level; unknown values are info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Catalog  string         `yaml:"catalog"`
	Coverage CoverageConfig `yaml:"coverage"`
	Serve    ServeConfig    `yaml:"serve"`
}

type LogConfig struct {
	Level  LogLevel `yaml:"level"`
	Format string   `yaml:"format"`
}

type CoverageConfig struct {
	// Driver is "sqlite" or "memory".
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	Top    int    `yaml:"top"`
}

type ServeConfig struct {
	Addr      string        `yaml:"addr"`
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
	Metrics   bool          `yaml:"metrics"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: LogInfo, Format: "text"},
		Coverage: CoverageConfig{Driver: "sqlite", Path: "coverage.db", Top: 20},
		Serve:    ServeConfig{Addr: ":8080", TokenTTL: 24 * time.Hour, Metrics: true},
	}
}

// Load reads the YAML configuration file at path on top of the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Unknown keys are an error.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns a joined error listing every invalid value.
func Validate(cfg *Config) error {
	var errs []error
	if cfg.Log.Level != "" && !cfg.Log.Level.IsValid() {
		errs = append(errs, fmt.Errorf("log.level %q is invalid; valid values: debug, info, warn, error", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is invalid; valid values: text, json", cfg.Log.Format))
	}

	switch cfg.Coverage.Driver {
	case "memory":
	case "sqlite":
		if cfg.Coverage.Path == "" {
			errs = append(errs, errors.New("coverage.path is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("coverage.driver %q is invalid; valid values: sqlite, memory", cfg.Coverage.Driver))
	}
	if cfg.Coverage.Top < 0 {
		errs = append(errs, fmt.Errorf("coverage.top %d must not be negative", cfg.Coverage.Top))
	}

	if cfg.Serve.TokenTTL < 0 {
		errs = append(errs, fmt.Errorf("serve.token_ttl %s must not be negative", cfg.Serve.TokenTTL))
	}
	if cfg.Serve.JWTSecret != "" && len(cfg.Serve.JWTSecret) < 16 {
		errs = append(errs, errors.New("serve.jwt_secret must be at least 16 characters"))
	}
	return errors.Join(errs...)
}

// Logger builds the slog logger the config describes.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Log.Level.Level()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
