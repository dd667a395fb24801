package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "", want: slog.LevelInfo},
		{in: "SUCCESS", want: LevelSuccess},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Greater(t, LevelSuccess, slog.LevelInfo)
	assert.Less(t, LevelSuccess, slog.LevelWarn)
}

func TestTextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "info", Format: "text"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("starting analysis", "beam", "B1")
	logger.Log(context.Background(), LevelSuccess, "converged", "iterations", 3)
	logger.With("file", "roof.pond").WithGroup("area").Warn("slow", "rain", 1.5)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO: starting analysis beam=B1\n")
	assert.Contains(t, out, "SUCCESS: converged iterations=3\n")
	assert.Contains(t, out, "WARNING: slow file=roof.pond area.rain=1.5\n")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug", Format: "json"})
	require.NoError(t, err)

	logger.Log(context.Background(), LevelSuccess, "converged")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "SUCCESS", rec["level"])
	assert.Equal(t, "converged", rec["msg"])
}

func TestNewRejectsUnknownOptions(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Format: "xml"})
	assert.Error(t, err)
	_, err = New(&bytes.Buffer{}, Options{Level: "loud"})
	assert.Error(t, err)

	Discard().Error("dropped")
}
