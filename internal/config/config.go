package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// CacheBackend selects where the response cache is persisted
type CacheBackend string

const (
	BackendBolt   CacheBackend = "bolt"
	BackendRedis  CacheBackend = "redis"
	BackendMemory CacheBackend = "memory"
)

// Config holds all application configuration
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	Defaults   DefaultsConfig   `mapstructure:"defaults"`
	Sync       SyncConfig       `mapstructure:"sync"`
	Opener     OpenerConfig     `mapstructure:"opener"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// APIConfig holds movie provider configuration
type APIConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	ImageBaseURL      string `mapstructure:"image_base_url"`
	DefaultPosterPath string `mapstructure:"default_poster_path"`
	Token             string `mapstructure:"token"`      // static bearer (read access) token
	AccountID         string `mapstructure:"account_id"` // account the favourites/ratings belong to
	MediaType         string `mapstructure:"media_type"`
}

// CacheConfig holds response cache configuration
type CacheConfig struct {
	Backend         CacheBackend `mapstructure:"backend"`
	Dir             string       `mapstructure:"dir"`
	RedisAddr       string       `mapstructure:"redis_addr"`
	StorageKey      string       `mapstructure:"storage_key"`
	SweepIntervalMs int          `mapstructure:"sweep_interval_ms"`
	TTL             TTLConfig    `mapstructure:"ttl"`
}

// TTLConfig holds per-kind cache lifetimes in minutes
type TTLConfig struct {
	TrendingMinutes   int `mapstructure:"trending_minutes"`
	SearchMinutes     int `mapstructure:"search_minutes"`
	FavouritesMinutes int `mapstructure:"favourites_minutes"`
	RatingsMinutes    int `mapstructure:"ratings_minutes"`
}

// PaginationConfig holds paging defaults
type PaginationConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// DefaultsConfig holds UI defaults
type DefaultsConfig struct {
	TrendingWindow string `mapstructure:"trending_window"`
}

// SyncConfig holds synchronization tuning
type SyncConfig struct {
	BulkConcurrency int `mapstructure:"bulk_concurrency"`
}

// OpenerConfig holds the command used to open poster URLs
type OpenerConfig struct {
	Command string   `mapstructure:"command"` // empty for system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "https://api.themoviedb.org/3/",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			DefaultPosterPath: "/placeholder-poster.jpg",
			MediaType:         "movie",
		},
		Cache: CacheConfig{
			Backend:         BackendBolt,
			Dir:             defaultCachePath(),
			RedisAddr:       "localhost:6379",
			StorageKey:      "movie_cache_store",
			SweepIntervalMs: 120000,
			TTL: TTLConfig{
				TrendingMinutes:   5,
				SearchMinutes:     3,
				FavouritesMinutes: 10,
				RatingsMinutes:    10,
			},
		},
		Pagination: PaginationConfig{
			PageSize: 20,
		},
		Defaults: DefaultsConfig{
			TrendingWindow: "week",
		},
		Sync: SyncConfig{
			BulkConcurrency: 8,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// SweepInterval returns the expiry sweep period
func (c CacheConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMs) * time.Millisecond
}

// Trending returns the trending TTL as a duration
func (t TTLConfig) Trending() time.Duration { return minutes(t.TrendingMinutes) }

// Search returns the search TTL as a duration
func (t TTLConfig) Search() time.Duration { return minutes(t.SearchMinutes) }

// Favourites returns the favourites TTL as a duration
func (t TTLConfig) Favourites() time.Duration { return minutes(t.FavouritesMinutes) }

// Ratings returns the ratings TTL as a duration
func (t TTLConfig) Ratings() time.Duration { return minutes(t.RatingsMinutes) }

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel", "reel.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "reel.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "reel", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "cache")
	}
}

// newViper returns a viper instance with defaults registered so that every
// key can be overridden from the environment (REEL_API_TOKEN, REEL_CACHE_TTL_SEARCH_MINUTES, ...)
func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()

	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.image_base_url", d.API.ImageBaseURL)
	v.SetDefault("api.default_poster_path", d.API.DefaultPosterPath)
	v.SetDefault("api.token", d.API.Token)
	v.SetDefault("api.account_id", d.API.AccountID)
	v.SetDefault("api.media_type", d.API.MediaType)

	v.SetDefault("cache.backend", string(d.Cache.Backend))
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("cache.storage_key", d.Cache.StorageKey)
	v.SetDefault("cache.sweep_interval_ms", d.Cache.SweepIntervalMs)
	v.SetDefault("cache.ttl.trending_minutes", d.Cache.TTL.TrendingMinutes)
	v.SetDefault("cache.ttl.search_minutes", d.Cache.TTL.SearchMinutes)
	v.SetDefault("cache.ttl.favourites_minutes", d.Cache.TTL.FavouritesMinutes)
	v.SetDefault("cache.ttl.ratings_minutes", d.Cache.TTL.RatingsMinutes)

	v.SetDefault("pagination.page_size", d.Pagination.PageSize)
	v.SetDefault("defaults.trending_window", d.Defaults.TrendingWindow)
	v.SetDefault("sync.bulk_concurrency", d.Sync.BulkConcurrency)
	v.SetDefault("opener.command", d.Opener.Command)
	v.SetDefault("opener.args", d.Opener.Args)

	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.level", d.Logging.Level)

	// Environment variable overrides
	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return Load("")
}

// Load reads configFile (or searches the default locations when empty),
// applies environment overrides and returns the merged configuration
func Load(configFile string) (*Config, error) {
	v := newViper()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, filepath.Join(defaultConfigPath(), "config.yaml"))
}

// SaveConfigTo writes the configuration as YAML to configFile
func SaveConfigTo(cfg *Config, configFile string) error {
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.image_base_url", cfg.API.ImageBaseURL)
	v.Set("api.default_poster_path", cfg.API.DefaultPosterPath)
	v.Set("api.token", cfg.API.Token)
	v.Set("api.account_id", cfg.API.AccountID)
	v.Set("api.media_type", cfg.API.MediaType)

	v.Set("cache.backend", string(cfg.Cache.Backend))
	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.redis_addr", cfg.Cache.RedisAddr)
	v.Set("cache.storage_key", cfg.Cache.StorageKey)
	v.Set("cache.sweep_interval_ms", cfg.Cache.SweepIntervalMs)
	v.Set("cache.ttl.trending_minutes", cfg.Cache.TTL.TrendingMinutes)
	v.Set("cache.ttl.search_minutes", cfg.Cache.TTL.SearchMinutes)
	v.Set("cache.ttl.favourites_minutes", cfg.Cache.TTL.FavouritesMinutes)
	v.Set("cache.ttl.ratings_minutes", cfg.Cache.TTL.RatingsMinutes)

	v.Set("pagination.page_size", cfg.Pagination.PageSize)
	v.Set("defaults.trending_window", cfg.Defaults.TrendingWindow)
	v.Set("sync.bulk_concurrency", cfg.Sync.BulkConcurrency)
	v.Set("opener.command", cfg.Opener.Command)
	v.Set("opener.args", cfg.Opener.Args)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveToken updates the token and account in the default config file,
// keeping every other setting
func SaveToken(token, accountID string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	cfg.API.Token = token
	if accountID != "" {
		cfg.API.AccountID = accountID
	}
	return SaveConfig(cfg)
}

// IsConfigured returns true if the token and account are set
func (c *Config) IsConfigured() bool {
	return c.API.Token != "" && c.API.AccountID != ""
}

// GetCachePath returns the default cache directory path
func GetCachePath() string {
	return defaultCachePath()
}
