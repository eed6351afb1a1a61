package streaks

import (
	"time"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
)

// Snapshot bundles every derived figure of a habit at instant now.
func Snapshot(h *domain.Habit, now time.Time) domain.HabitStats {
	current := Current(h, now)
	longest := Longest(h)

	return domain.HabitStats{
		HabitID:            h.ID,
		HabitName:          h.Name,
		Icon:               h.Icon,
		Color:              h.Color,
		CurrentStreak:      current,
		LongestStreak:      longest,
		WeeklyRate:         CompletionRate(h, WeekWindow, now),
		MonthlyRate:        CompletionRate(h, MonthWindow, now),
		YearlyRate:         CompletionRate(h, YearWindow, now),
		OverallConsistency: OverallConsistency(h, now),
		TotalCompletions:   TotalCompletions(h),
		Badges:             EvaluateBadges(longest, current),
	}
}

// Recompute overwrites the cached streak fields. It must run after every
// mutation of Completions and before the habit is persisted. It reports
// whether the cached values changed.
func Recompute(h *domain.Habit, now time.Time) bool {
	current := Current(h, now)
	longest := Longest(h)

	changed := h.Streak != current || h.LongestStreak != longest
	h.Streak = current
	h.LongestStreak = longest

	return changed
}

// RecomputeAll applies Recompute to every habit and returns how many changed.
func RecomputeAll(habits []*domain.Habit, now time.Time) int {
	changed := 0
	for _, h := range habits {
		if Recompute(h, now) {
			changed++
		}
	}
	return changed
}
