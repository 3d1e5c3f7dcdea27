package log

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/reel/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetupLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "reel.log")

	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "DEBUG"})
	require.NoError(t, err)

	logger.Debug("cache hit", "key", "ratings_page_1")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"cache hit"`)
	assert.Contains(t, string(data), `"key":"ratings_page_1"`)
}

func TestNullLogger(t *testing.T) {
	assert.NotPanics(t, func() { NullLogger().Error("dropped") })
}
