package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

var _ domain.Store = (*InMemoryStore)(nil)

// InMemoryStore keeps deep copies so callers never share state with the store.
type InMemoryStore struct {
	habits     []*domain.Habit
	categories []*domain.Category

	mu sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (r *InMemoryStore) Load(ctx context.Context) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := make([]*domain.Habit, 0, len(r.habits))
	for _, h := range r.habits {
		habits = append(habits, h.Clone())
	}
	return habits, nil
}

func (r *InMemoryStore) Save(ctx context.Context, habits []*domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.habits = make([]*domain.Habit, 0, len(habits))
	for _, h := range habits {
		r.habits = append(r.habits, h.Clone())
	}
	return nil
}

func (r *InMemoryStore) LoadCategories(ctx context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		clone := *c
		categories = append(categories, &clone)
	}
	return categories, nil
}

func (r *InMemoryStore) SaveCategories(ctx context.Context, categories []*domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.categories = make([]*domain.Category, 0, len(categories))
	for _, c := range categories {
		clone := *c
		r.categories = append(r.categories, &clone)
	}
	return nil
}

func (r *InMemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (r *InMemoryStore) Close() error {
	return nil
}
