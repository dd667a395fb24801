package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1e-4, cfg.Analysis.Tolerance)
	assert.Equal(t, 50, cfg.Analysis.MaxIterations)
	assert.Equal(t, "info", cfg.Log.Level)

	s := cfg.Solver()
	assert.Equal(t, 1e-4, s.Tolerance)
	assert.Equal(t, 50, s.MaxIterations)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero tolerance", func(c *Config) { c.Analysis.Tolerance = 0 }},
		{"negative tolerance", func(c *Config) { c.Analysis.Tolerance = -1e-3 }},
		{"one iteration", func(c *Config) { c.Analysis.MaxIterations = 1 }},
		{"unknown level", func(c *Config) { c.Log.Level = "chatty" }},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }},
		{"flat plot", func(c *Config) { c.Plot.Height = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis:\n  max_iterations: 80\nlog:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Analysis.MaxIterations)
	assert.Equal(t, 1e-4, cfg.Analysis.Tolerance)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 8.0, cfg.Plot.Width)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("analysis:\n  tolerance: -1\n"), 0o644))
	_, err := Load(bad)
	assert.ErrorContains(t, err, "analysis.tolerance")

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("analysis: [\n"), 0o644))
	_, err = Load(broken)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Setenv(EnvVar, "")

	cfg, path, err := Resolve("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)

	envPath := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(envPath, []byte("analysis:\n  max_iterations: 10\n"), 0o644))
	t.Setenv(EnvVar, envPath)
	cfg, path, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, envPath, path)
	assert.Equal(t, 10, cfg.Analysis.MaxIterations)

	explicit := filepath.Join(dir, "explicit.yaml")
	require.NoError(t, WriteDefault(explicit))
	cfg, path, err = Resolve(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, Default(), cfg)
}
