package streaks

import "github.com/comitanigiacomo/momentum/internal/core/domain"

// Milestones is ordered by ascending Days.
var Milestones = []domain.Milestone{
	{Days: 7, Name: "1 Week", Icon: "Award"},
	{Days: 14, Name: "2 Weeks", Icon: "Medal"},
	{Days: 30, Name: "1 Month", Icon: "Star"},
	{Days: 60, Name: "2 Months", Icon: "Trophy"},
	{Days: 90, Name: "3 Months", Icon: "Gem"},
	{Days: 180, Name: "6 Months", Icon: "Crown"},
	{Days: 365, Name: "1 Year", Icon: "Rocket"},
}

// EvaluateBadges picks the achieved badge from the longest streak ever, while
// progress toward the next badge is measured with the current streak.
func EvaluateBadges(longest, current int) domain.BadgeProgress {
	var result domain.BadgeProgress

	for i := range Milestones {
		m := Milestones[i]
		if m.Days <= longest {
			result.Achieved = &m
			continue
		}
		result.Next = &m
		break
	}

	if result.Next == nil {
		result.Progress = 100
		return result
	}

	if current > 0 {
		result.Progress = min(100, current*100/result.Next.Days)
	}

	return result
}
