package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything roster needs at startup.
type Config struct {
	APIBase        string
	Cohort         string
	LogPath        string
	LogLevel       string
	RequestTimeout time.Duration
	DiscardStale   bool
}

const (
	defaultConfigPath     = "~/.config/roster/config.toml"
	defaultAPIBase        = "https://fsa-puppy-bowl.herokuapp.com/api"
	defaultCohort         = "2501-ftb-et-web-pt"
	defaultLogPath        = "~/.local/state/roster/roster.log"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 10 * time.Second

	envPrefix = "ROSTER_"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		Cohort:         defaultCohort,
		LogPath:        mustExpand(defaultLogPath),
		LogLevel:       defaultLogLevel,
		RequestTimeout: defaultRequestTimeout,
		DiscardStale:   true,
	}
}

// fileConfig mirrors config.toml. Pointers distinguish "unset" from zero.
type fileConfig struct {
	APIBase        string `toml:"api_base"`
	Cohort         string `toml:"cohort"`
	LogPath        string `toml:"log_path"`
	LogLevel       string `toml:"log_level"`
	RequestTimeout string `toml:"request_timeout"`
	DiscardStale   *bool  `toml:"discard_stale"`
}

// envConfig holds ROSTER_* overrides; everything arrives as text.
type envConfig struct {
	APIBase        string `koanf:"api_base"`
	Cohort         string `koanf:"cohort"`
	LogPath        string `koanf:"log_path"`
	LogLevel       string `koanf:"log_level"`
	RequestTimeout string `koanf:"request_timeout"`
	DiscardStale   string `koanf:"discard_stale"`
}

// Load layers defaults, the TOML file at path, and ROSTER_* environment
// variables (highest precedence). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	if err := applyFile(&cfg, resolved); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings roster cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Cohort) == "" {
		return errors.New("cohort must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if strings.TrimSpace(c.LogPath) == "" {
		return errors.New("log_path must not be empty")
	}
	return nil
}

func applyFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if err := merge(cfg, raw.APIBase, raw.Cohort, raw.LogPath, raw.LogLevel, raw.RequestTimeout); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if raw.DiscardStale != nil {
		cfg.DiscardStale = *raw.DiscardStale
	}
	return nil
}

func applyEnv(cfg *Config) error {
	k := koanf.New(".")
	provider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	var raw envConfig
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("decode env: %w", err)
	}

	if err := merge(cfg, raw.APIBase, raw.Cohort, raw.LogPath, raw.LogLevel, raw.RequestTimeout); err != nil {
		return fmt.Errorf("env: %w", err)
	}
	if v := strings.TrimSpace(raw.DiscardStale); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("env: %sDISCARD_STALE: %w", envPrefix, err)
		}
		cfg.DiscardStale = b
	}
	return nil
}

// merge overwrites cfg with every non-blank value.
func merge(cfg *Config, apiBase, cohort, logPath, logLevel, timeout string) error {
	if v := strings.TrimSpace(apiBase); v != "" {
		cfg.APIBase = v
	}
	if v := strings.TrimSpace(cohort); v != "" {
		cfg.Cohort = v
	}
	if v := strings.TrimSpace(logPath); v != "" {
		expanded, err := expandPath(v)
		if err != nil {
			return fmt.Errorf("log_path: %w", err)
		}
		cfg.LogPath = expanded
	}
	if v := strings.TrimSpace(logLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}

// DefaultPath returns the config file used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
