// Package config loads the gopond settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gopond/internal/beam"
	"github.com/alexiusacademia/gopond/internal/logging"
)

// EnvVar names the environment variable holding a config file path
const EnvVar = "GOPOND_CONFIG"

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Plot     PlotConfig     `yaml:"plot"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Color  bool   `yaml:"color"`
}

type AnalysisConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

// PlotConfig sizes the image plots, in inches
type PlotConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatText,
			Color:  true,
		},
		Analysis: AnalysisConfig{
			Tolerance:     beam.DefaultTolerance,
			MaxIterations: beam.DefaultMaxIterations,
		},
		Plot: PlotConfig{
			Width:  8,
			Height: 4,
		},
	}
}

// Validate checks the settings
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != logging.FormatText && c.Log.Format != logging.FormatJSON {
		return fmt.Errorf("log.format: expected 'text' or 'json', got %q", c.Log.Format)
	}
	if !(c.Analysis.Tolerance > 0) {
		return fmt.Errorf("analysis.tolerance: must be positive, got %g", c.Analysis.Tolerance)
	}
	if c.Analysis.MaxIterations < 2 {
		return fmt.Errorf("analysis.max_iterations: must be at least 2, got %d", c.Analysis.MaxIterations)
	}
	if !(c.Plot.Width > 0) || !(c.Plot.Height > 0) {
		return fmt.Errorf("plot: width and height must be positive, got %g x %g", c.Plot.Width, c.Plot.Height)
	}
	return nil
}

// Solver returns a ponding solver using the analysis settings
func (c Config) Solver() beam.PondingSolver {
	return beam.PondingSolver{
		Tolerance:     c.Analysis.Tolerance,
		MaxIterations: c.Analysis.MaxIterations,
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns <user config dir>/gopond/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's config directory: %w", err)
	}
	return filepath.Join(dir, "gopond", "config.yaml"), nil
}

// Resolve finds the config file: the explicit path, then $GOPOND_CONFIG,
// then the default path if it exists. Without any, the defaults are returned
// with an empty path.
func Resolve(explicit string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	if env := os.Getenv(EnvVar); env != "" {
		cfg, err := Load(env)
		return cfg, env, err
	}

	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// WriteDefault writes the default settings to path, creating its directory
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
