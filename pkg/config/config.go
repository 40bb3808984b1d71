// Package config provides YAML-based configuration for godel-pulse.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	Backend    BackendConfig    `yaml:"backend"`
	Stream     StreamConfig     `yaml:"stream"`
	Collectors CollectorsConfig `yaml:"collectors"`
	Daemon     DaemonConfig     `yaml:"daemon"`
	Theme      ThemeConfig      `yaml:"theme"`
}

// BackendConfig locates the GödelOS backend.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	WSURL   string `yaml:"ws_url"`
}

// StreamConfig tunes the consciousness-stream view.
type StreamConfig struct {
	MaxEvents   int    `yaml:"max_events"`
	Granularity string `yaml:"granularity"` // detailed|summary|minimal
}

// CollectorsConfig holds per-collector settings.
type CollectorsConfig struct {
	Cognitive    CollectorConfig `yaml:"cognitive"`
	Transparency CollectorConfig `yaml:"transparency"`
	Health       CollectorConfig `yaml:"health"`
	SysMetrics   CollectorConfig `yaml:"sysmetrics"`
}

// CollectorConfig enables one collector and sets its poll interval.
type CollectorConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Interval Duration `yaml:"interval"`
}

// DaemonConfig configures watch mode.
type DaemonConfig struct {
	CacheDir   string `yaml:"cache_dir"`
	LogFile    string `yaml:"log_file"`
	PIDFile    string `yaml:"pid_file"`
	HealthFile string `yaml:"health_file"`
}

// ThemeConfig selects the color palette. File, when set, points at a TOML
// theme to register before lookup, so Name may refer to a custom theme.
type ThemeConfig struct {
	Name string `yaml:"name"`
	File string `yaml:"file,omitempty"`
}

// Default returns the default configuration with sensible defaults.
func Default() *Config {
	home, _ := os.UserHomeDir()
	stateDir := filepath.Join(xdgCacheHome(home), "godel-pulse")

	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			WSURL:   "ws://localhost:8000/api/enhanced-cognitive/stream",
		},
		Stream: StreamConfig{
			MaxEvents:   100,
			Granularity: "summary",
		},
		Collectors: CollectorsConfig{
			Cognitive:    CollectorConfig{Enabled: true, Interval: Duration{10 * time.Second}},
			Transparency: CollectorConfig{Enabled: true, Interval: Duration{30 * time.Second}},
			Health:       CollectorConfig{Enabled: true, Interval: Duration{15 * time.Second}},
			SysMetrics:   CollectorConfig{Enabled: true, Interval: Duration{2 * time.Second}},
		},
		Daemon: DaemonConfig{
			CacheDir:   stateDir,
			LogFile:    filepath.Join(stateDir, "godel-pulse.log"),
			PIDFile:    filepath.Join(stateDir, "godel-pulse.pid"),
			HealthFile: filepath.Join(stateDir, "health.json"),
		},
		Theme: ThemeConfig{Name: "default"},
	}
}

// Validate checks cross-field constraints that YAML decoding cannot.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url must not be empty")
	}
	if c.Backend.WSURL == "" {
		return fmt.Errorf("backend.ws_url must not be empty")
	}
	if c.Stream.MaxEvents <= 0 {
		return fmt.Errorf("stream.max_events must be positive, got %d", c.Stream.MaxEvents)
	}
	switch c.Stream.Granularity {
	case "detailed", "summary", "minimal":
	default:
		return fmt.Errorf("stream.granularity must be detailed, summary, or minimal; got %q", c.Stream.Granularity)
	}
	return nil
}

// Load reads configuration from the standard config path. Search order:
//  1. $XDG_CONFIG_HOME/godel-pulse/config.yaml
//  2. ~/.config/godel-pulse/config.yaml
//
// If no file exists, returns Default().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := Default()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific path. A missing file
// falls back to defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides checks environment variables and overrides values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GODEL_PULSE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("GODEL_PULSE_WS_URL"); v != "" {
		cfg.Backend.WSURL = v
	}
	if v := os.Getenv("GODEL_PULSE_THEME"); v != "" {
		cfg.Theme.Name = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "godel-pulse", "config.yaml"))

	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "godel-pulse", "config.yaml"))
	}
	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgCacheHome returns XDG_CACHE_HOME or ~/.cache as fallback.
func xdgCacheHome(home string) string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".cache")
}
