package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/logger"
)

var _ domain.Store = (*CachedStore)(nil)

const (
	habitsCacheKey = "momentum:habits:snapshot"
	habitsCacheTTL = 30 * time.Minute
)

// CachedStore memoizes the habit list in redis. Categories pass straight
// through. Any redis failure falls back to the wrapped store.
type CachedStore struct {
	domain.Store
	cache *redis.Client

	// fillMu orders cache fills against saves, so a fill that read the
	// store before a Save can never land after that Save's invalidation.
	fillMu sync.Mutex
}

func NewCachedStore(next domain.Store, cache *redis.Client) *CachedStore {
	return &CachedStore{
		Store: next,
		cache: cache,
	}
}

func (r *CachedStore) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, habitsCacheKey).Err(); err != nil {
		logger.Warn("[CACHE] Failed to invalidate habit snapshot", "error", err)
	}
}

func (r *CachedStore) Load(ctx context.Context) ([]*domain.Habit, error) {
	val, err := r.cache.Get(ctx, habitsCacheKey).Result()
	if err == nil {
		var habits []*domain.Habit
		if err := json.Unmarshal([]byte(val), &habits); err == nil {
			return habits, nil
		}

		logger.Warn("[CACHE] Corrupted habit snapshot, cleaning up key")
		r.invalidate(ctx)
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("[CACHE] Redis read error", "error", err)
	}

	r.fillMu.Lock()
	defer r.fillMu.Unlock()

	habits, err := r.Store.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(habits); err == nil {
		if setErr := r.cache.Set(ctx, habitsCacheKey, data, habitsCacheTTL).Err(); setErr != nil {
			logger.Warn("[CACHE] Redis set error", "error", setErr)
		}
	}

	return habits, nil
}

func (r *CachedStore) Save(ctx context.Context, habits []*domain.Habit) error {
	r.fillMu.Lock()
	defer r.fillMu.Unlock()

	if err := r.Store.Save(ctx, habits); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}
