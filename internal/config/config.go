// Package config defines the runner configuration: protocol durations and
// task enables, sickness-report debounce, marker output, tick rate, and
// logging. Values load through viper with env overrides (VECTION_ prefix)
// and an optional YAML config file.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete runner configuration
type Config struct {
	Protocol ProtocolConfig `mapstructure:"protocol"`
	Sickness SicknessConfig `mapstructure:"sickness"`
	Tick     TickConfig     `mapstructure:"tick"`
	Markers  MarkerConfig   `mapstructure:"markers"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Paths    PathsConfig    `mapstructure:"paths"`
}

// ProtocolConfig is the immutable per-run sequence configuration.
// It is read once at sequence start.
type ProtocolConfig struct {
	// MindfulnessSeconds is the duration of the opening mindfulness phase
	MindfulnessSeconds float64 `mapstructure:"mindfulness_seconds"`
	// RestSeconds is the duration of each rest phase before a task
	RestSeconds float64 `mapstructure:"rest_seconds"`
	// EnableVisit enables the Visit task (and its preceding rest)
	EnableVisit bool `mapstructure:"enable_visit"`
	// EnableSelect enables the Selection task (and its preceding rest)
	EnableSelect bool `mapstructure:"enable_select"`
	// EnableManipulation enables the Manipulation task (and its preceding rest)
	EnableManipulation bool `mapstructure:"enable_manipulation"`
}

// SicknessConfig controls the participant sickness report debounce
type SicknessConfig struct {
	// CooldownSeconds locks out further reports after an accepted one
	CooldownSeconds float64 `mapstructure:"cooldown_seconds"`
	// AckSeconds is the visual acknowledgment window. Defaults to the
	// cooldown value.
	AckSeconds float64 `mapstructure:"ack_seconds"`
}

// TickConfig controls the frame-tick driver
type TickConfig struct {
	// IntervalMs is the tick period in milliseconds (default: 100)
	IntervalMs int `mapstructure:"interval_ms"`
}

// MarkerConfig controls where markers are recorded
type MarkerConfig struct {
	// File is the marker output file path. Empty means log-only markers.
	File string `mapstructure:"file"`
}

// LoggingConfig controls structured run logging
type LoggingConfig struct {
	// Enabled controls whether run logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// PathsConfig controls where the runner stores run artifacts
type PathsConfig struct {
	// RunDir is the directory for per-run logs and marker files.
	// Empty defaults to ".vection/runs" under the working directory.
	// Supports ~ for home directory expansion.
	RunDir string `mapstructure:"run_dir"`
}

// MindfulnessDuration returns the mindfulness phase duration
func (p *ProtocolConfig) MindfulnessDuration() time.Duration {
	return time.Duration(p.MindfulnessSeconds * float64(time.Second))
}

// RestDuration returns the rest phase duration
func (p *ProtocolConfig) RestDuration() time.Duration {
	return time.Duration(p.RestSeconds * float64(time.Second))
}

// Cooldown returns the sickness-report lockout duration
func (s *SicknessConfig) Cooldown() time.Duration {
	return time.Duration(s.CooldownSeconds * float64(time.Second))
}

// AckWindow returns the acknowledgment window duration
func (s *SicknessConfig) AckWindow() time.Duration {
	return time.Duration(s.AckSeconds * float64(time.Second))
}

// Interval returns the tick period as a time.Duration
func (t *TickConfig) Interval() time.Duration {
	return time.Duration(t.IntervalMs) * time.Millisecond
}

// ResolveRunDir returns the resolved run directory path.
// If RunDir is empty, it returns the default path relative to baseDir.
// If RunDir starts with ~, it expands to the user's home directory.
func (p *PathsConfig) ResolveRunDir(baseDir string) string {
	if p.RunDir == "" {
		return filepath.Join(baseDir, ".vection", "runs")
	}

	path := p.RunDir
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return path
}

// Default returns a Config with the standard protocol values
func Default() *Config {
	return &Config{
		Protocol: ProtocolConfig{
			MindfulnessSeconds: 300, // 5 minute baseline
			RestSeconds:        60,
			EnableVisit:        true,
			EnableSelect:       true,
			EnableManipulation: true,
		},
		Sickness: SicknessConfig{
			CooldownSeconds: 5,
			AckSeconds:      5,
		},
		Tick: TickConfig{
			IntervalMs: 100,
		},
		Markers: MarkerConfig{
			File: "", // log-only unless configured
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
		Paths: PathsConfig{
			RunDir: "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("protocol.mindfulness_seconds", defaults.Protocol.MindfulnessSeconds)
	viper.SetDefault("protocol.rest_seconds", defaults.Protocol.RestSeconds)
	viper.SetDefault("protocol.enable_visit", defaults.Protocol.EnableVisit)
	viper.SetDefault("protocol.enable_select", defaults.Protocol.EnableSelect)
	viper.SetDefault("protocol.enable_manipulation", defaults.Protocol.EnableManipulation)

	viper.SetDefault("sickness.cooldown_seconds", defaults.Sickness.CooldownSeconds)
	viper.SetDefault("sickness.ack_seconds", defaults.Sickness.AckSeconds)

	viper.SetDefault("tick.interval_ms", defaults.Tick.IntervalMs)

	viper.SetDefault("markers.file", defaults.Markers.File)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)

	viper.SetDefault("paths.run_dir", defaults.Paths.RunDir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vection")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vection"
	}
	return filepath.Join(home, ".config", "vection")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
