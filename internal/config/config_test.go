package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.themoviedb.org/3/", cfg.API.BaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500", cfg.API.ImageBaseURL)
	assert.Equal(t, "/placeholder-poster.jpg", cfg.API.DefaultPosterPath)
	assert.Equal(t, BackendBolt, cfg.Cache.Backend)
	assert.Equal(t, "movie_cache_store", cfg.Cache.StorageKey)
	assert.Equal(t, 2*time.Minute, cfg.Cache.SweepInterval())
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL.Trending())
	assert.Equal(t, 3*time.Minute, cfg.Cache.TTL.Search())
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL.Favourites())
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL.Ratings())
	assert.Equal(t, 20, cfg.Pagination.PageSize)
	assert.Equal(t, "week", cfg.Defaults.TrendingWindow)
	assert.Equal(t, 8, cfg.Sync.BulkConcurrency)
	assert.False(t, cfg.IsConfigured())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("REEL_API_TOKEN", "env-token")
	t.Setenv("REEL_API_ACCOUNT_ID", "99")
	t.Setenv("REEL_CACHE_BACKEND", "redis")
	t.Setenv("REEL_CACHE_TTL_SEARCH_MINUTES", "1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.API.Token)
	assert.Equal(t, "99", cfg.API.AccountID)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, time.Minute, cfg.Cache.TTL.Search())
	assert.True(t, cfg.IsConfigured())
}

func TestLoad_File(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "reel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  token: file-token
  account_id: "42"
cache:
  backend: memory
  ttl:
    trending_minutes: 30
defaults:
  trending_window: day
opener:
  command: feh
  args: ["--scale-down"]
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.API.Token)
	assert.Equal(t, "42", cfg.API.AccountID)
	assert.Equal(t, BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL.Trending())
	assert.Equal(t, 3*time.Minute, cfg.Cache.TTL.Search(), "unset keys keep defaults")
	assert.Equal(t, "day", cfg.Defaults.TrendingWindow)
	assert.Equal(t, "feh", cfg.Opener.Command)
	assert.Equal(t, []string{"--scale-down"}, cfg.Opener.Args)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolateHome(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveConfigTo_RoundTrip(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.Token = "saved"
	cfg.API.AccountID = "7"
	cfg.Cache.TTL.RatingsMinutes = 15
	cfg.Sync.BulkConcurrency = 3
	require.NoError(t, SaveConfigTo(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.API.Token)
	assert.Equal(t, "7", loaded.API.AccountID)
	assert.Equal(t, 15*time.Minute, loaded.Cache.TTL.Ratings())
	assert.Equal(t, 3, loaded.Sync.BulkConcurrency)
}

func TestSaveToken_KeepsOtherSettings(t *testing.T) {
	home := isolateHome(t)

	cfg := DefaultConfig()
	cfg.Defaults.TrendingWindow = "day"
	require.NoError(t, SaveConfig(cfg))

	require.NoError(t, SaveToken("tok", "5"))

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.API.Token)
	assert.Equal(t, "5", loaded.API.AccountID)
	assert.Equal(t, "day", loaded.Defaults.TrendingWindow)
	assert.FileExists(t, filepath.Join(home, ".config", "reel", "config.yaml"))
}
