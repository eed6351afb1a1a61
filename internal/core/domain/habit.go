package domain

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty    = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong  = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong  = errors.New("habit description is too long (max 500 chars)")
	ErrInvalidColor      = errors.New("invalid color (must be #RRGGBB or a palette name)")
	ErrInvalidWeekdays   = errors.New("invalid weekdays (must be 0-6)")
	ErrInvalidFrequency  = errors.New("invalid frequency (must be daily, weekly, monthly, or specific_days)")
	ErrMissingWeekdays   = errors.New("specific_days frequency requires at least one weekday")
	ErrInvalidGoalEnd    = errors.New("invalid goal end date (must be YYYY-MM-DD)")
	ErrInvalidCompletion = errors.New("invalid completion date (must be YYYY-MM-DD)")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

type Frequency string

const (
	FrequencyDaily        Frequency = "daily"
	FrequencyWeekly       Frequency = "weekly"
	FrequencyMonthly      Frequency = "monthly"
	FrequencySpecificDays Frequency = "specific_days"

	DefaultIcon  = "CheckCircle"
	DefaultColor = "default"
	MaxNameLen   = 100
	MaxDescLen   = 500
)

// Palette names accepted in place of a hex color.
var PaletteColors = map[string]string{
	"default": "#6b7280",
	"blue":    "#3b82f6",
	"green":   "#22c55e",
	"purple":  "#a855f7",
	"red":     "#ef4444",
	"orange":  "#f97316",
	"yellow":  "#eab308",
	"pink":    "#ec4899",
	"cyan":    "#06b6d4",
	"indigo":  "#6366f1",
	"lime":    "#84cc16",
}

// ValidColor reports whether c is a palette name or a #RRGGBB/#RGB hex color.
func ValidColor(c string) bool {
	if _, named := PaletteColors[c]; named {
		return true
	}
	return colorRegex.MatchString(c)
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencySpecificDays:
		return true
	}
	return false
}

// Habit is the tracked entity. Streak and LongestStreak are derived from
// Completions and are only ever written by the streak engine.
type Habit struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Frequency     Frequency       `json:"frequency"`
	SpecificDays  []int           `json:"specific_days,omitempty"`
	Goal          string          `json:"goal,omitempty"`
	GoalEndDate   string          `json:"goal_end_date,omitempty"`
	CategoryID    string          `json:"category_id,omitempty"`
	Color         string          `json:"color"`
	Icon          string          `json:"icon"`
	CreatedAt     time.Time       `json:"created_at"`
	Completions   map[string]bool `json:"completions"`
	Streak        int             `json:"streak"`
	LongestStreak int             `json:"longest_streak"`
}

// HabitFields carries the user-editable part of a habit.
type HabitFields struct {
	Name         string
	Description  string
	Frequency    Frequency
	SpecificDays []int
	Goal         string
	GoalEndDate  string
	CategoryID   string
	Color        string
	Icon         string
}

func normalizeWeekdays(days []int) []int {
	if len(days) == 0 {
		return nil
	}

	uniqueMap := make(map[int]bool)
	var uniqueDays []int
	for _, d := range days {
		if !uniqueMap[d] {
			uniqueMap[d] = true
			uniqueDays = append(uniqueDays, d)
		}
	}

	sort.Ints(uniqueDays)
	return uniqueDays
}

func validateAndNormalize(f HabitFields) (HabitFields, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return f, ErrHabitNameEmpty
	}
	if len(f.Name) > MaxNameLen {
		return f, ErrHabitNameTooLong
	}

	f.Description = strings.TrimSpace(f.Description)
	if len(f.Description) > MaxDescLen {
		return f, ErrHabitDescTooLong
	}

	if f.Frequency == "" {
		f.Frequency = FrequencyDaily
	}
	if !f.Frequency.Valid() {
		return f, ErrInvalidFrequency
	}

	for _, day := range f.SpecificDays {
		if day < 0 || day > 6 {
			return f, ErrInvalidWeekdays
		}
	}
	if f.Frequency == FrequencySpecificDays {
		f.SpecificDays = normalizeWeekdays(f.SpecificDays)
		if len(f.SpecificDays) == 0 {
			return f, ErrMissingWeekdays
		}
	} else {
		f.SpecificDays = nil
	}

	f.Color = strings.TrimSpace(f.Color)
	if f.Color == "" {
		f.Color = DefaultColor
	}
	if !ValidColor(f.Color) {
		return f, ErrInvalidColor
	}

	if f.Icon == "" {
		f.Icon = DefaultIcon
	}

	f.GoalEndDate = strings.TrimSpace(f.GoalEndDate)
	if f.GoalEndDate != "" {
		if _, err := time.Parse(DateLayout, f.GoalEndDate); err != nil {
			return f, ErrInvalidGoalEnd
		}
	}

	f.Goal = strings.TrimSpace(f.Goal)
	f.CategoryID = strings.TrimSpace(f.CategoryID)

	return f, nil
}

func NewHabit(fields HabitFields, now time.Time) (*Habit, error) {
	clean, err := validateAndNormalize(fields)
	if err != nil {
		return nil, err
	}

	h := &Habit{
		ID:          uuid.New().String(),
		CreatedAt:   now,
		Completions: make(map[string]bool),
	}
	h.apply(clean)

	return h, nil
}

func (h *Habit) Update(fields HabitFields) error {
	clean, err := validateAndNormalize(fields)
	if err != nil {
		return err
	}

	h.apply(clean)
	return nil
}

func (h *Habit) apply(f HabitFields) {
	h.Name = f.Name
	h.Description = f.Description
	h.Frequency = f.Frequency
	h.SpecificDays = f.SpecificDays
	h.Goal = f.Goal
	h.GoalEndDate = f.GoalEndDate
	h.CategoryID = f.CategoryID
	h.Color = f.Color
	h.Icon = f.Icon
}

// Fields returns the editable state, used for merge-style updates.
func (h *Habit) Fields() HabitFields {
	days := make([]int, len(h.SpecificDays))
	copy(days, h.SpecificDays)

	return HabitFields{
		Name:         h.Name,
		Description:  h.Description,
		Frequency:    h.Frequency,
		SpecificDays: days,
		Goal:         h.Goal,
		GoalEndDate:  h.GoalEndDate,
		CategoryID:   h.CategoryID,
		Color:        h.Color,
		Icon:         h.Icon,
	}
}

// ToggleCompletion flips the completion flag of the given YYYY-MM-DD day.
// It returns the new state. Cached streaks are NOT refreshed here.
func (h *Habit) ToggleCompletion(date string) (bool, error) {
	day, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return false, ErrInvalidCompletion
	}
	key := day.Format(DateLayout)

	if h.Completions == nil {
		h.Completions = make(map[string]bool)
	}

	if h.Completions[key] {
		delete(h.Completions, key)
		return false, nil
	}

	h.Completions[key] = true
	return true, nil
}

func (h *Habit) ClearCategory() {
	h.CategoryID = ""
}

// CompletedDates returns the keys marked true, ascending.
func (h *Habit) CompletedDates() []string {
	dates := make([]string, 0, len(h.Completions))
	for key, done := range h.Completions {
		if done {
			dates = append(dates, key)
		}
	}
	sort.Strings(dates)
	return dates
}

func (h *Habit) Clone() *Habit {
	clone := *h

	if h.SpecificDays != nil {
		clone.SpecificDays = make([]int, len(h.SpecificDays))
		copy(clone.SpecificDays, h.SpecificDays)
	}

	clone.Completions = make(map[string]bool, len(h.Completions))
	for k, v := range h.Completions {
		clone.Completions[k] = v
	}

	return &clone
}
