package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

// Wednesday. The surrounding week runs from 2025-03-10 to 2025-03-16.
var testNow = time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC)

var testClock = domain.FixedClock{At: testNow}

func day(offset int) string {
	return domain.DateKey(testNow.AddDate(0, 0, offset))
}

func completions(offsets ...int) map[string]bool {
	m := make(map[string]bool, len(offsets))
	for _, o := range offsets {
		m[day(o)] = true
	}
	return m
}

// fakeStore is an in-memory store that records how often each list was saved.
type fakeStore struct {
	habits     []*domain.Habit
	categories []*domain.Category

	habitSaves    int
	categorySaves int
}

func newFakeStore(habits []*domain.Habit, categories ...*domain.Category) *fakeStore {
	s := &fakeStore{}
	for _, h := range habits {
		s.habits = append(s.habits, h.Clone())
	}
	for _, c := range categories {
		clone := *c
		s.categories = append(s.categories, &clone)
	}
	return s
}

func (s *fakeStore) Load(ctx context.Context) ([]*domain.Habit, error) {
	out := make([]*domain.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		out = append(out, h.Clone())
	}
	return out, nil
}

func (s *fakeStore) Save(ctx context.Context, habits []*domain.Habit) error {
	s.habitSaves++
	s.habits = nil
	for _, h := range habits {
		s.habits = append(s.habits, h.Clone())
	}
	return nil
}

func (s *fakeStore) LoadCategories(ctx context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (s *fakeStore) SaveCategories(ctx context.Context, categories []*domain.Category) error {
	s.categorySaves++
	s.categories = nil
	for _, c := range categories {
		clone := *c
		s.categories = append(s.categories, &clone)
	}
	return nil
}

func (s *fakeStore) find(id string) *domain.Habit {
	for _, h := range s.habits {
		if h.ID == id {
			return h
		}
	}
	return nil
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) ([]*domain.Habit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Habit), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, habits []*domain.Habit) error {
	args := m.Called(ctx, habits)
	return args.Error(0)
}

func (m *MockStore) LoadCategories(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockStore) SaveCategories(ctx context.Context, categories []*domain.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}
