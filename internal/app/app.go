// Package app assembles stores, services and the refresh worker from a Config.
// Both the HTTP server and the CLI start from here.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/momentum/internal/adapters/cache"
	"github.com/comitanigiacomo/momentum/internal/adapters/report"
	"github.com/comitanigiacomo/momentum/internal/adapters/repository"
	"github.com/comitanigiacomo/momentum/internal/config"
	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/core/services"
	"github.com/comitanigiacomo/momentum/internal/core/workers"
	"github.com/comitanigiacomo/momentum/internal/logger"
)

type App struct {
	Config config.Config
	Clock  domain.Clock
	Store  domain.Store
	Redis  *redis.Client

	Habits     *services.HabitService
	Categories *services.CategoryService
	Stats      *services.StatsService
	Reports    *services.ReportService
	Worker     *workers.StreakWorker

	// writeMu is shared by every component that loads, modifies and saves Store.
	writeMu sync.Mutex
}

// OpenStore opens the backing store selected by cfg.StoreDriver.
func OpenStore(cfg config.Config) (domain.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverJSON:
		return repository.NewJSONStore(cfg.StorePath, cfg.Location)
	case config.DriverSQLite:
		return repository.NewSQLiteStore(cfg.StorePath, cfg.Location)
	case config.DriverMemory:
		return repository.NewInMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// New wires everything together. An unreachable redis disables the cache
// with a warning instead of failing startup.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := OpenStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	logger.Debug("[STORE] Store opened", "driver", cfg.StoreDriver, "path", cfg.StorePath)

	a := &App{
		Config: cfg,
		Clock:  domain.SystemClock{Location: cfg.Location},
		Store:  store,
	}

	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Warn("[CACHE] Redis unavailable, running without cache", "error", err)
		} else {
			a.Redis = rdb
			a.Store = repository.NewCachedStore(store, rdb)
		}
	}

	a.Habits = services.NewHabitService(a.Store, a.Store, a.Clock, &a.writeMu)
	a.Categories = services.NewCategoryService(a.Store, a.Store, &a.writeMu)
	a.Stats = services.NewStatsService(a.Store, a.Clock)
	a.Reports = services.NewReportService(a.Store, report.NewTextRenderer(), a.Clock)
	a.Worker = workers.NewStreakWorker(a.Store, a.Clock, cfg.Location, cfg.RefreshCron, &a.writeMu)

	return a, nil
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	errs = append(errs, a.Store.Close())
	return errors.Join(errs...)
}
