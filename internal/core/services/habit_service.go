package services

import (
	"context"
	"strings"
	"sync"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/core/streaks"
)

type HabitService struct {
	habits     domain.HabitRepository
	categories domain.CategoryRepository
	clock      domain.Clock

	// writeMu serializes load-modify-save cycles on the stored lists.
	writeMu *sync.Mutex
}

// NewHabitService builds the service. writeMu must be shared with every
// other writer of the same store; nil gives the service a private lock.
func NewHabitService(habits domain.HabitRepository, categories domain.CategoryRepository, clock domain.Clock, writeMu *sync.Mutex) *HabitService {
	if writeMu == nil {
		writeMu = &sync.Mutex{}
	}

	return &HabitService{
		habits:     habits,
		categories: categories,
		clock:      clock,
		writeMu:    writeMu,
	}
}

type CreateHabitInput struct {
	Name         string
	Description  string
	Frequency    string
	SpecificDays []int
	Goal         string
	GoalEndDate  string
	CategoryID   string
	Color        string
	Icon         string
}

// UpdateHabitInput follows merge semantics: empty strings and a nil
// SpecificDays keep the stored value. CategoryID is a pointer so that
// an empty string can clear the reference.
type UpdateHabitInput struct {
	ID           string
	Name         string
	Description  string
	Frequency    string
	SpecificDays []int
	Goal         string
	GoalEndDate  string
	CategoryID   *string
	Color        string
	Icon         string
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func indexOf(habits []*domain.Habit, id string) int {
	for i, h := range habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func (s *HabitService) ensureCategory(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	categories, err := s.categories.LoadCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		if c.ID == id {
			return nil
		}
	}
	return domain.ErrCategoryNotFound
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	now := s.clock.Now()

	habit, err := domain.NewHabit(domain.HabitFields{
		Name:         input.Name,
		Description:  input.Description,
		Frequency:    domain.Frequency(input.Frequency),
		SpecificDays: input.SpecificDays,
		Goal:         input.Goal,
		GoalEndDate:  input.GoalEndDate,
		CategoryID:   input.CategoryID,
		Color:        input.Color,
		Icon:         input.Icon,
	}, now)
	if err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.ensureCategory(ctx, habit.CategoryID); err != nil {
		return nil, err
	}

	habits, err := s.habits.Load(ctx)
	if err != nil {
		return nil, err
	}

	streaks.Recompute(habit, now)
	habits = append(habits, habit)

	if err := s.habits.Save(ctx, habits); err != nil {
		return nil, err
	}

	return habit, nil
}

// Get returns the habit with its cached streak fields brought up to date.
func (s *HabitService) Get(ctx context.Context, id string) (*domain.Habit, error) {
	habits, err := s.habits.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(habits, id)
	if i < 0 {
		return nil, domain.ErrHabitNotFound
	}

	streaks.Recompute(habits[i], s.clock.Now())
	return habits[i], nil
}

// List returns every habit in stored order. A non-empty categoryID keeps
// only the habits tagged with it.
func (s *HabitService) List(ctx context.Context, categoryID string) ([]*domain.Habit, error) {
	habits, err := s.habits.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	categoryID = strings.TrimSpace(categoryID)

	list := make([]*domain.Habit, 0, len(habits))
	for _, h := range habits {
		if categoryID != "" && h.CategoryID != categoryID {
			continue
		}
		streaks.Recompute(h, now)
		list = append(list, h)
	}

	return list, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	habits, err := s.habits.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(habits, input.ID)
	if i < 0 {
		return nil, domain.ErrHabitNotFound
	}
	habit := habits[i]

	fields := habit.Fields()
	fields.Name = mergeString(input.Name, fields.Name)
	fields.Description = mergeString(input.Description, fields.Description)
	fields.Frequency = domain.Frequency(mergeString(input.Frequency, string(fields.Frequency)))
	fields.Goal = mergeString(input.Goal, fields.Goal)
	fields.GoalEndDate = mergeString(input.GoalEndDate, fields.GoalEndDate)
	fields.Color = mergeString(input.Color, fields.Color)
	fields.Icon = mergeString(input.Icon, fields.Icon)
	if input.SpecificDays != nil {
		fields.SpecificDays = input.SpecificDays
	}

	if input.CategoryID != nil {
		fields.CategoryID = strings.TrimSpace(*input.CategoryID)
		if err := s.ensureCategory(ctx, fields.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := habit.Update(fields); err != nil {
		return nil, err
	}

	streaks.Recompute(habit, s.clock.Now())

	if err := s.habits.Save(ctx, habits); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	habits, err := s.habits.Load(ctx)
	if err != nil {
		return err
	}

	i := indexOf(habits, id)
	if i < 0 {
		return domain.ErrHabitNotFound
	}

	habits = append(habits[:i], habits[i+1:]...)
	return s.habits.Save(ctx, habits)
}

// ToggleCompletion flips the completion of date (YYYY-MM-DD, today when
// empty) and recomputes the cached streaks before saving. It returns the
// updated habit and whether the day is now complete.
func (s *HabitService) ToggleCompletion(ctx context.Context, id, date string) (*domain.Habit, bool, error) {
	now := s.clock.Now()

	date = strings.TrimSpace(date)
	if date == "" {
		date = domain.DateKey(now)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	habits, err := s.habits.Load(ctx)
	if err != nil {
		return nil, false, err
	}

	i := indexOf(habits, id)
	if i < 0 {
		return nil, false, domain.ErrHabitNotFound
	}
	habit := habits[i]

	done, err := habit.ToggleCompletion(date)
	if err != nil {
		return nil, false, err
	}

	streaks.Recompute(habit, now)

	if err := s.habits.Save(ctx, habits); err != nil {
		return nil, false, err
	}

	return habit, done, nil
}

// Import appends already-normalized habits, skipping ids that exist.
// References to unknown categories are cleared and cached streaks are
// recomputed for every imported habit. It returns how many habits were
// added and skipped.
func (s *HabitService) Import(ctx context.Context, incoming []*domain.Habit) (int, int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	habits, err := s.habits.Load(ctx)
	if err != nil {
		return 0, 0, err
	}

	categories, err := s.categories.LoadCategories(ctx)
	if err != nil {
		return 0, 0, err
	}
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	seen := make(map[string]bool, len(habits))
	for _, h := range habits {
		seen[h.ID] = true
	}

	now := s.clock.Now()
	added, skipped := 0, 0
	for _, h := range incoming {
		if seen[h.ID] {
			skipped++
			continue
		}
		seen[h.ID] = true

		if h.CategoryID != "" && !known[h.CategoryID] {
			h.ClearCategory()
		}
		streaks.Recompute(h, now)
		habits = append(habits, h)
		added++
	}

	if added == 0 {
		return 0, skipped, nil
	}

	if err := s.habits.Save(ctx, habits); err != nil {
		return 0, 0, err
	}

	return added, skipped, nil
}
