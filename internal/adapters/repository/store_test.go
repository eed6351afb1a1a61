package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/momentum/internal/adapters/cache"
	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

func fixtureHabits(t *testing.T) []*domain.Habit {
	created := time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC)

	read, err := domain.NewHabit(domain.HabitFields{
		Name:        "Read",
		Description: "20 pages",
		Goal:        "20 pages",
		GoalEndDate: "2025-12-31",
		CategoryID:  "cat-1",
		Color:       "blue",
		Icon:        "Book",
	}, created)
	require.NoError(t, err)
	read.Completions["2025-01-10"] = true
	read.Completions["2025-01-11"] = true
	read.Streak = 2
	read.LongestStreak = 2

	gym, err := domain.NewHabit(domain.HabitFields{
		Name:         "Gym",
		Frequency:    domain.FrequencySpecificDays,
		SpecificDays: []int{5, 1, 3},
	}, created)
	require.NoError(t, err)

	return []*domain.Habit{read, gym}
}

// runStoreContract exercises the load/save contract shared by every store.
func runStoreContract(t *testing.T, store domain.Store) {
	ctx := context.Background()

	t.Run("Empty store loads empty lists", func(t *testing.T) {
		habits, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, habits)

		categories, err := store.LoadCategories(ctx)
		require.NoError(t, err)
		assert.Empty(t, categories)
	})

	t.Run("Habits round trip keeps order and completions", func(t *testing.T) {
		want := fixtureHabits(t)
		require.NoError(t, store.Save(ctx, want))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)

		assert.Equal(t, want[0].ID, got[0].ID)
		assert.Equal(t, "Read", got[0].Name)
		assert.Equal(t, "20 pages", got[0].Goal)
		assert.Equal(t, "2025-12-31", got[0].GoalEndDate)
		assert.Equal(t, "cat-1", got[0].CategoryID)
		assert.Equal(t, map[string]bool{"2025-01-10": true, "2025-01-11": true}, got[0].Completions)
		assert.True(t, want[0].CreatedAt.Equal(got[0].CreatedAt))

		assert.Equal(t, domain.FrequencySpecificDays, got[1].Frequency)
		assert.Equal(t, []int{1, 3, 5}, got[1].SpecificDays)
		assert.Empty(t, got[1].Completions)
	})

	t.Run("Save replaces the whole list", func(t *testing.T) {
		habits, err := store.Load(ctx)
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, habits[1:]))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Gym", got[0].Name)
	})

	t.Run("Categories are independent of habits", func(t *testing.T) {
		require.NoError(t, store.SaveCategories(ctx, []*domain.Category{
			{ID: "c1", Name: "Health", Color: "green"},
			{ID: "c2", Name: "Mind"},
		}))

		categories, err := store.LoadCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "Health", categories[0].Name)
		assert.Equal(t, "green", categories[0].Color)

		habits, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, habits, 1)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore()
	runStoreContract(t, store)

	t.Run("Returned habits are copies", func(t *testing.T) {
		ctx := context.Background()
		habits, _ := store.Load(ctx)
		habits[0].Completions["2030-01-01"] = true

		again, _ := store.Load(ctx)
		assert.NotContains(t, again[0].Completions, "2030-01-01")
	})
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "momentum.json")

	store, err := NewJSONStore(path, time.UTC)
	require.NoError(t, err)
	defer store.Close()

	runStoreContract(t, store)

	t.Run("Document uses the local storage keys", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)

		assert.Contains(t, string(data), `"habits"`)
		assert.Contains(t, string(data), `"habit_tracker_categories"`)
	})

	t.Run("Corrupted file is an error, not an empty list", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

		_, err := store.Load(context.Background())
		assert.Error(t, err)
	})
}

func TestJSONStore_LegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.json")
	legacy := `{
  "habits": [
    {
      "id": "old-1",
      "name": "Meditate",
      "frequency": "weekly",
      "createdAt": "2025-01-01T08:00:00.000Z",
      "completionHistory": ["2025-01-02", "2025-01-03T10:00:00.000Z", "garbage", "2025-01-02"],
      "streak": 42,
      "longestStreak": 42
    }
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0600))

	store, err := NewJSONStore(path, time.UTC)
	require.NoError(t, err)

	habits, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, habits, 1)

	assert.Equal(t, map[string]bool{"2025-01-02": true, "2025-01-03": true}, habits[0].Completions)
	assert.Equal(t, domain.FrequencyWeekly, habits[0].Frequency)
	assert.Equal(t, 0, habits[0].Streak)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "momentum.db")

	store, err := NewSQLiteStore(path, time.UTC)
	require.NoError(t, err)
	defer store.Close()

	runStoreContract(t, store)

	t.Run("Reopening sees committed data", func(t *testing.T) {
		require.NoError(t, store.Close())

		reopened, err := NewSQLiteStore(path, time.UTC)
		require.NoError(t, err)
		defer reopened.Close()

		habits, err := reopened.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, habits, 1)
	})
}

// loadHookStore runs onLoad between reading the wrapped store and returning,
// the window in which a concurrent Save can slip past a cache fill.
type loadHookStore struct {
	*InMemoryStore
	onLoad func()
}

func (s *loadHookStore) Load(ctx context.Context) ([]*domain.Habit, error) {
	habits, err := s.InMemoryStore.Load(ctx)
	if hook := s.onLoad; hook != nil {
		s.onLoad = nil
		hook()
	}
	return habits, err
}

func TestCachedStore_Integration(t *testing.T) {
	ctx := context.Background()

	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	rdb, err := cache.NewRedisClient(ctx, cache.Options{Host: host, Port: port, Password: os.Getenv("REDIS_PASSWORD"), DB: 2})
	if err != nil {
		t.Skipf("Skipping cached store test: %v", err)
	}
	defer rdb.Close()
	require.NoError(t, rdb.FlushDB(ctx).Err())

	backing := NewInMemoryStore()
	store := NewCachedStore(backing, rdb)

	runStoreContract(t, store)

	t.Run("Save invalidates the snapshot", func(t *testing.T) {
		_, err := store.Load(ctx)
		require.NoError(t, err)

		exists, err := rdb.Exists(ctx, habitsCacheKey).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)

		require.NoError(t, store.Save(ctx, nil))

		exists, err = rdb.Exists(ctx, habitsCacheKey).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(0), exists)
	})
	t.Run("Save during a cache fill is not undone", func(t *testing.T) {
		require.NoError(t, rdb.FlushDB(ctx).Err())

		backing := &loadHookStore{InMemoryStore: NewInMemoryStore()}
		store := NewCachedStore(backing, rdb)

		older := fixtureHabits(t)
		require.NoError(t, backing.InMemoryStore.Save(ctx, older))

		saved := make(chan error, 1)
		backing.onLoad = func() {
			go func() { saved <- store.Save(ctx, older[:1]) }()
			time.Sleep(50 * time.Millisecond)
		}

		first, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, first, 2)
		require.NoError(t, <-saved)

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 1, "stale snapshot survived the save")
	})
}
