package services

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

type CategoryService struct {
	categories domain.CategoryRepository
	habits     domain.HabitRepository
	writeMu    *sync.Mutex
}

// NewCategoryService builds the service. Pass the writeMu shared with the
// HabitService so that the delete cascade cannot interleave with habit writes.
func NewCategoryService(categories domain.CategoryRepository, habits domain.HabitRepository, writeMu *sync.Mutex) *CategoryService {
	if writeMu == nil {
		writeMu = &sync.Mutex{}
	}

	return &CategoryService{
		categories: categories,
		habits:     habits,
		writeMu:    writeMu,
	}
}

func (s *CategoryService) Create(ctx context.Context, name, color, icon string) (*domain.Category, error) {
	category, err := domain.NewCategory(name, color, icon)
	if err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	categories, err := s.categories.LoadCategories(ctx)
	if err != nil {
		return nil, err
	}

	categories = append(categories, category)
	if err := s.categories.SaveCategories(ctx, categories); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.LoadCategories(ctx)
}

// Delete removes the category and clears it from every habit that
// references it. Habits are saved first so that a failure never leaves
// a habit pointing at a missing category. Completions and streaks are
// untouched. It returns how many habits were detached.
func (s *CategoryService) Delete(ctx context.Context, id string) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	categories, err := s.categories.LoadCategories(ctx)
	if err != nil {
		return 0, err
	}

	pos := -1
	for i, c := range categories {
		if c.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return 0, domain.ErrCategoryNotFound
	}

	habits, err := s.habits.Load(ctx)
	if err != nil {
		return 0, err
	}

	detached := 0
	for _, h := range habits {
		if h.CategoryID == id {
			h.ClearCategory()
			detached++
		}
	}

	if detached > 0 {
		if err := s.habits.Save(ctx, habits); err != nil {
			return 0, err
		}
	}

	categories = append(categories[:pos], categories[pos+1:]...)
	if err := s.categories.SaveCategories(ctx, categories); err != nil {
		return detached, err
	}

	return detached, nil
}
