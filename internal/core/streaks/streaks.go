// Package streaks derives streaks, completion rates and badge progress from a
// habit's completion map. Every function is pure: the cached Streak and
// LongestStreak fields of a habit are never read, and "today" is always the
// calendar day of the now argument in now's own location.
package streaks

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

// IsComplete reports whether the calendar day of day is marked done.
func IsComplete(h *domain.Habit, day time.Time) bool {
	if h == nil || h.Completions == nil {
		return false
	}
	return h.Completions[domain.DateKey(day)]
}

// Current counts consecutive completed days ending today. A habit not done
// today has a current streak of 0, whatever happened yesterday.
func Current(h *domain.Habit, now time.Time) int {
	streak := 0
	day := domain.StartOfDay(now)

	for IsComplete(h, day) {
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}

// Longest returns the longest run of calendar-adjacent completed days.
// Frequency is ignored: a weekly habit done every seventh day has runs of 1.
func Longest(h *domain.Habit) int {
	if h == nil || len(h.Completions) == 0 {
		return 0
	}

	dates := make([]time.Time, 0, len(h.Completions))
	for key, done := range h.Completions {
		if !done {
			continue
		}
		t, err := time.Parse(domain.DateLayout, key)
		if err != nil {
			continue
		}
		dates = append(dates, t)
	}

	if len(dates) == 0 {
		return 0
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	longest, current := 1, 1
	for i := 1; i < len(dates); i++ {
		gap := domain.DaysBetween(dates[i-1], dates[i])

		switch {
		case gap == 1:
			current++
		case gap > 1:
			current = 1
		}

		if current > longest {
			longest = current
		}
	}

	return longest
}
