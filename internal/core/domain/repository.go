package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// HabitRepository is the local store of the whole habit list. It mirrors the
// load-everything / save-everything contract of a browser's local storage.
type HabitRepository interface {
	// Load returns every stored habit. An empty store yields an empty slice.
	Load(ctx context.Context) ([]*Habit, error)

	// Save replaces the stored habit list with habits.
	Save(ctx context.Context, habits []*Habit) error
}

type CategoryRepository interface {
	LoadCategories(ctx context.Context) ([]*Category, error)

	SaveCategories(ctx context.Context, categories []*Category) error
}

// Store is implemented by the adapters that persist both lists.
type Store interface {
	HabitRepository
	CategoryRepository

	Ping(ctx context.Context) error
	Close() error
}
