package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds deckhand's runtime settings.
type Config struct {
	Locale          string
	StartRoute      string
	LogFile         string
	LogLevel        string
	SeedFile        string
	Now             time.Time // zero means wall clock
	DeployListLimit int
	LoginDelay      time.Duration
	ToastDuration   time.Duration
	Simulator       Simulator
}

// Simulator holds deploy stage offsets measured from the deploy invocation.
type Simulator struct {
	BuildingAfter  time.Duration
	DeployingAfter time.Duration
	LiveAfter      time.Duration
	NavigateAfter  time.Duration
}

const (
	defaultConfigPath      = "~/.config/deckhand/config.toml"
	defaultLogFile         = "~/.local/state/deckhand/deckhand.log"
	defaultLocale          = "en"
	defaultStartRoute      = "/login"
	defaultLogLevel        = "info"
	defaultDeployListLimit = 30
	defaultLoginDelay      = 800 * time.Millisecond
	defaultToastDuration   = 3 * time.Second
	defaultBuildingAfter   = 1000 * time.Millisecond
	defaultDeployingAfter  = 3000 * time.Millisecond
	defaultLiveAfter       = 5000 * time.Millisecond
	defaultNavigateAfter   = 6500 * time.Millisecond
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Locale:          defaultLocale,
		StartRoute:      defaultStartRoute,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
		DeployListLimit: defaultDeployListLimit,
		LoginDelay:      defaultLoginDelay,
		ToastDuration:   defaultToastDuration,
		Simulator: Simulator{
			BuildingAfter:  defaultBuildingAfter,
			DeployingAfter: defaultDeployingAfter,
			LiveAfter:      defaultLiveAfter,
			NavigateAfter:  defaultNavigateAfter,
		},
	}
}

type rawConfig struct {
	Locale          string       `toml:"locale"`
	StartRoute      string       `toml:"start_route"`
	LogFile         *string      `toml:"log_file"`
	LogLevel        string       `toml:"log_level"`
	SeedFile        string       `toml:"seed_file"`
	Now             string       `toml:"now"`
	DeployListLimit int          `toml:"deploy_list_limit"`
	LoginDelayMS    int64        `toml:"login_delay_ms"`
	ToastMS         int64        `toml:"toast_ms"`
	Simulator       rawSimulator `toml:"simulator"`
}

type rawSimulator struct {
	BuildingAfterMS  int64 `toml:"building_after_ms"`
	DeployingAfterMS int64 `toml:"deploying_after_ms"`
	LiveAfterMS      int64 `toml:"live_after_ms"`
	NavigateAfterMS  int64 `toml:"navigate_after_ms"`
}

// Load reads the config at path, falling back to defaults when the file is
// missing. Blank or non-positive fields keep their defaults. An explicitly
// empty log_file disables logging.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	setString(&cfg.Locale, raw.Locale)
	setString(&cfg.StartRoute, raw.StartRoute)
	setString(&cfg.LogLevel, raw.LogLevel)
	if raw.LogFile != nil {
		cfg.LogFile = strings.TrimSpace(*raw.LogFile)
		if cfg.LogFile != "" {
			cfg.LogFile = mustExpand(cfg.LogFile)
		}
	}
	if seed := strings.TrimSpace(raw.SeedFile); seed != "" {
		cfg.SeedFile = mustExpand(seed)
	}
	if now := strings.TrimSpace(raw.Now); now != "" {
		parsed, err := time.Parse(time.RFC3339, now)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: now: %w", err)
		}
		cfg.Now = parsed
	}
	if raw.DeployListLimit > 0 {
		cfg.DeployListLimit = raw.DeployListLimit
	}
	setMillis(&cfg.LoginDelay, raw.LoginDelayMS)
	setMillis(&cfg.ToastDuration, raw.ToastMS)
	setMillis(&cfg.Simulator.BuildingAfter, raw.Simulator.BuildingAfterMS)
	setMillis(&cfg.Simulator.DeployingAfter, raw.Simulator.DeployingAfterMS)
	setMillis(&cfg.Simulator.LiveAfter, raw.Simulator.LiveAfterMS)
	setMillis(&cfg.Simulator.NavigateAfter, raw.Simulator.NavigateAfterMS)

	return cfg, nil
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func setString(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func setMillis(dst *time.Duration, ms int64) {
	if ms > 0 {
		*dst = time.Duration(ms) * time.Millisecond
	}
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
