package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/core/services"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Should create and persist a category", func(t *testing.T) {
		store := newFakeStore(nil)
		svc := services.NewCategoryService(store, store, nil)

		category, err := svc.Create(ctx, " Health ", "green", "Heart")

		require.NoError(t, err)
		assert.NotEmpty(t, category.ID)
		assert.Equal(t, "Health", category.Name)

		list, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, category.ID, list[0].ID)
	})

	t.Run("Fail: Empty name", func(t *testing.T) {
		store := newFakeStore(nil)

		_, err := services.NewCategoryService(store, store, nil).Create(ctx, "  ", "", "")

		assert.ErrorIs(t, err, domain.ErrCategoryNameEmpty)
		assert.Equal(t, 0, store.categorySaves)
	})

	t.Run("Fail: Invalid color", func(t *testing.T) {
		store := newFakeStore(nil)

		_, err := services.NewCategoryService(store, store, nil).Create(ctx, "Health", "not-a-color", "")

		assert.ErrorIs(t, err, domain.ErrInvalidColor)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	health := &domain.Category{ID: "health", Name: "Health"}
	mind := &domain.Category{ID: "mind", Name: "Mind"}

	t.Run("Success: Cascade clears the reference and keeps history", func(t *testing.T) {
		run, _ := domain.NewHabit(domain.HabitFields{Name: "Run", CategoryID: "health"}, testNow.AddDate(0, 0, -10))
		run.Completions = completions(0, -1, -2, -6)
		run.Streak = 3
		run.LongestStreak = 3

		read, _ := domain.NewHabit(domain.HabitFields{Name: "Read", CategoryID: "mind"}, testNow)

		store := newFakeStore([]*domain.Habit{run, read}, health, mind)
		svc := services.NewCategoryService(store, store, nil)

		detached, err := svc.Delete(ctx, "health")

		require.NoError(t, err)
		assert.Equal(t, 1, detached)

		got := store.find(run.ID)
		require.NotNil(t, got, "the habit itself must survive")
		assert.Empty(t, got.CategoryID)
		assert.Equal(t, completions(0, -1, -2, -6), got.Completions)
		assert.Equal(t, 3, got.Streak)
		assert.Equal(t, 3, got.LongestStreak)

		assert.Equal(t, "mind", store.find(read.ID).CategoryID)

		require.Len(t, store.categories, 1)
		assert.Equal(t, "mind", store.categories[0].ID)
	})

	t.Run("Success: Unused category does not rewrite habits", func(t *testing.T) {
		read, _ := domain.NewHabit(domain.HabitFields{Name: "Read", CategoryID: "mind"}, testNow)
		store := newFakeStore([]*domain.Habit{read}, health, mind)

		detached, err := services.NewCategoryService(store, store, nil).Delete(ctx, "health")

		require.NoError(t, err)
		assert.Equal(t, 0, detached)
		assert.Equal(t, 0, store.habitSaves)
		assert.Equal(t, 1, store.categorySaves)
	})

	t.Run("Fail: Category Not Found", func(t *testing.T) {
		store := newFakeStore(nil, health)

		_, err := services.NewCategoryService(store, store, nil).Delete(ctx, "ghost")

		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
		assert.Equal(t, 0, store.categorySaves)
	})

	t.Run("Fail: Habit save error keeps the category", func(t *testing.T) {
		run, _ := domain.NewHabit(domain.HabitFields{Name: "Run", CategoryID: "health"}, testNow)

		repo := new(MockStore)
		svc := services.NewCategoryService(repo, repo, nil)

		dbErr := errors.New("disk full")
		repo.On("LoadCategories", ctx).Return([]*domain.Category{health}, nil)
		repo.On("Load", ctx).Return([]*domain.Habit{run}, nil)
		repo.On("Save", ctx, mock.Anything).Return(dbErr)

		_, err := svc.Delete(ctx, "health")

		assert.ErrorIs(t, err, dbErr)
		repo.AssertNotCalled(t, "SaveCategories", mock.Anything, mock.Anything)
	})
}
