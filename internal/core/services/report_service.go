package services

import (
	"context"
	"fmt"
	"io"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/core/streaks"
)

type ReportService struct {
	habitRepo domain.HabitRepository
	renderer  domain.ReportRenderer
	clock     domain.Clock
}

func NewReportService(habitRepo domain.HabitRepository, renderer domain.ReportRenderer, clock domain.Clock) *ReportService {
	return &ReportService{
		habitRepo: habitRepo,
		renderer:  renderer,
		clock:     clock,
	}
}

// Weekly builds the report for the Monday..Sunday week containing today.
func (s *ReportService) Weekly(ctx context.Context) (*domain.WeeklyReport, error) {
	habits, err := s.habitRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	monday, sunday := domain.WeekBounds(now)

	report := &domain.WeeklyReport{
		GeneratedOn: domain.DateKey(now),
		WeekStart:   domain.DateKey(monday),
		WeekEnd:     domain.DateKey(sunday),
		Habits:      make([]domain.WeeklyReportEntry, 0, len(habits)),
	}

	weekly := make([]int, 0, len(habits))
	overall := make([]int, 0, len(habits))

	for _, h := range habits {
		entry := domain.WeeklyReportEntry{
			HabitID:       h.ID,
			Name:          h.Name,
			YearlyRate:    streaks.CompletionRate(h, streaks.YearWindow, now),
			CurrentStreak: streaks.Current(h, now),
			LongestStreak: streaks.Longest(h),
			GoalEndDate:   h.GoalEndDate,
		}
		for d := 0; d < 7; d++ {
			entry.WeekStatus[d] = streaks.IsComplete(h, monday.AddDate(0, 0, d))
		}
		report.Habits = append(report.Habits, entry)

		weekly = append(weekly, streaks.CompletionRate(h, streaks.WeekWindow, now))
		overall = append(overall, streaks.OverallConsistency(h, now))
	}

	report.AverageWeeklyRate = average(weekly)
	report.AverageOverallConsistency = average(overall)

	return report, nil
}

// Filename is the attachment name of a rendered report.
func (s *ReportService) Filename(report *domain.WeeklyReport) string {
	return fmt.Sprintf("habit-tracker-weekly-report-%s.%s", report.GeneratedOn, s.renderer.Extension())
}

func (s *ReportService) ContentType() string {
	return s.renderer.ContentType()
}

func (s *ReportService) Render(ctx context.Context, w io.Writer, report *domain.WeeklyReport) error {
	if err := s.renderer.Render(ctx, w, report); err != nil {
		return fmt.Errorf("failed to render weekly report: %w", err)
	}
	return nil
}
