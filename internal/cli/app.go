package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/log"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tmdb"
)

var (
	errNotConfigured = errors.New("not configured: run `reel login` first")
	errUsage         = errors.New("invalid usage")
)

// newGateway builds the provider client; tests replace it
var newGateway = func(cfg config.APIConfig, logger *slog.Logger) domain.MovieGateway {
	return tmdb.NewClient(cfg, logger)
}

// app bundles everything a command needs
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
	svc    *service.SyncService
	images tmdb.Images
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// openStore opens the response cache. A backend that cannot be opened
// degrades to an in-memory cache for this run.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) *store.Store {
	backend, err := store.NewBackend(ctx, cfg.Cache, cfg.API.AccountID)
	if err != nil {
		logger.Warn("cache backend unavailable, using memory", "backend", cfg.Cache.Backend, "error", err)
		backend = store.NewMemoryBackend()
	}
	return store.Open(backend, store.Options{
		SweepInterval: cfg.Cache.SweepInterval(),
		Logger:        logger,
	})
}

// openApp loads configuration and builds the sync service
func openApp(ctx context.Context) (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.IsConfigured() {
		return nil, errNotConfigured
	}

	st := openStore(ctx, cfg, logger)
	svc := service.New(newGateway(cfg.API, logger), st, service.Options{
		TTL:             service.TTLsFromConfig(cfg.Cache.TTL),
		BulkConcurrency: cfg.Sync.BulkConcurrency,
		Logger:          logger,
	})

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  st,
		svc:    svc,
		images: tmdb.NewImages(cfg.API),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close cache", "error", err)
	}
}

// defaultWindow returns the configured trending window, falling back to week
func (a *app) defaultWindow() domain.TimeWindow {
	w, err := domain.ParseTimeWindow(a.cfg.Defaults.TrendingWindow)
	if err != nil {
		return domain.WindowWeek
	}
	return w
}
