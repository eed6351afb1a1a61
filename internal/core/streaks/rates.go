package streaks

import (
	"math"
	"time"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

const (
	WeekWindow  = 7
	MonthWindow = 30
	YearWindow  = 365
)

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// CompletionRate is the share of the windowDays days ending today (inclusive)
// that were completed, as a rounded percentage.
func CompletionRate(h *domain.Habit, windowDays int, now time.Time) int {
	if windowDays <= 0 {
		return 0
	}

	today := domain.StartOfDay(now)
	completed := 0
	for i := 0; i < windowDays; i++ {
		if IsComplete(h, today.AddDate(0, 0, -i)) {
			completed++
		}
	}

	return percent(completed, windowDays)
}

// OverallConsistency relates all completions to the days elapsed since the
// habit was created, creation day included. The result is capped at 100 for
// histories imported with completions older than the habit itself.
func OverallConsistency(h *domain.Habit, now time.Time) int {
	if h == nil || h.CreatedAt.IsZero() {
		return 0
	}

	today := domain.StartOfDay(now)
	created := domain.StartOfDay(h.CreatedAt.In(now.Location()))
	if today.Before(created) {
		return 0
	}

	totalDays := domain.DaysBetween(created, today) + 1
	if totalDays <= 0 {
		return 0
	}

	return min(100, percent(TotalCompletions(h), totalDays))
}

func TotalCompletions(h *domain.Habit) int {
	if h == nil {
		return 0
	}

	total := 0
	for _, done := range h.Completions {
		if done {
			total++
		}
	}
	return total
}
