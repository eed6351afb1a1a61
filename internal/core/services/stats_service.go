package services

import (
	"context"
	"math"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/core/streaks"
)

type StatsService struct {
	habitRepo domain.HabitRepository
	clock     domain.Clock
}

func NewStatsService(habitRepo domain.HabitRepository, clock domain.Clock) *StatsService {
	return &StatsService{
		habitRepo: habitRepo,
		clock:     clock,
	}
}

func average(values []int) int {
	if len(values) == 0 {
		return 0
	}

	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}

func (s *StatsService) HabitStats(ctx context.Context, id string) (*domain.HabitStats, error) {
	habits, err := s.habitRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(habits, id)
	if i < 0 {
		return nil, domain.ErrHabitNotFound
	}

	stats := streaks.Snapshot(habits[i], s.clock.Now())
	return &stats, nil
}

func (s *StatsService) Summary(ctx context.Context) (*domain.StatsSummary, error) {
	habits, err := s.habitRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	summary := &domain.StatsSummary{
		Date:        domain.DateKey(now),
		TotalHabits: len(habits),
		Habits:      make([]domain.HabitStats, 0, len(habits)),
	}

	weekly := make([]int, 0, len(habits))
	monthly := make([]int, 0, len(habits))
	overall := make([]int, 0, len(habits))

	for _, h := range habits {
		stat := streaks.Snapshot(h, now)
		summary.Habits = append(summary.Habits, stat)

		weekly = append(weekly, stat.WeeklyRate)
		monthly = append(monthly, stat.MonthlyRate)
		overall = append(overall, stat.OverallConsistency)
	}

	summary.AverageWeeklyRate = average(weekly)
	summary.AverageMonthlyRate = average(monthly)
	summary.AverageOverallConsistency = average(overall)

	return summary, nil
}
