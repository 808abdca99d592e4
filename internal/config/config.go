package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Window is the logical client area of the canvas window.
type Window struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Config is the ggcomp configuration file.
type Config struct {
	Window Window `yaml:"window"`
	// Driver names a registered driver, or "auto" for the highest priority.
	Driver string `yaml:"driver"`
	// Debug requests driver validation on the hardware device.
	Debug bool `yaml:"debug"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Window:   Window{Width: 600, Height: 400},
		Driver:   "auto",
		LogLevel: "info",
	}
}

// ValidationError names the invalid field.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("must be > 0")}
	}
	if c.Window.Height <= 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("must be > 0")}
	}
	if strings.TrimSpace(c.Driver) == "" {
		return &ValidationError{Path: "driver", Err: fmt.Errorf("driver is required (use \"auto\")")}
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	return nil
}

// Level returns the slog level for LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log_level must be one of: debug, info, warn, error")
}
