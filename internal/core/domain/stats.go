package domain

import (
	"context"
	"io"
)

type Milestone struct {
	Days int    `json:"days"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type BadgeProgress struct {
	Achieved *Milestone `json:"achieved"`
	Next     *Milestone `json:"next"`
	Progress int        `json:"progress_pct"`
}

type HabitStats struct {
	HabitID            string        `json:"habit_id"`
	HabitName          string        `json:"habit_name"`
	Icon               string        `json:"icon"`
	Color              string        `json:"color"`
	CurrentStreak      int           `json:"current_streak"`
	LongestStreak      int           `json:"longest_streak"`
	WeeklyRate         int           `json:"weekly_rate"`
	MonthlyRate        int           `json:"monthly_rate"`
	YearlyRate         int           `json:"yearly_rate"`
	OverallConsistency int           `json:"overall_consistency"`
	TotalCompletions   int           `json:"total_completions"`
	Badges             BadgeProgress `json:"badges"`
}

type StatsSummary struct {
	Date                      string       `json:"date"`
	TotalHabits               int          `json:"total_habits"`
	AverageWeeklyRate         int          `json:"average_weekly_rate"`
	AverageMonthlyRate        int          `json:"average_monthly_rate"`
	AverageOverallConsistency int          `json:"average_overall_consistency"`
	Habits                    []HabitStats `json:"habits"`
}

type WeeklyReport struct {
	GeneratedOn               string              `json:"generated_on"`
	WeekStart                 string              `json:"week_start"`
	WeekEnd                   string              `json:"week_end"`
	AverageWeeklyRate         int                 `json:"average_weekly_rate"`
	AverageOverallConsistency int                 `json:"average_overall_consistency"`
	Habits                    []WeeklyReportEntry `json:"habits"`
}

type WeeklyReportEntry struct {
	HabitID       string  `json:"habit_id"`
	Name          string  `json:"name"`
	YearlyRate    int     `json:"yearly_rate"`
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	WeekStatus    [7]bool `json:"week_status"`
	GoalEndDate   string  `json:"goal_end_date,omitempty"`
}

// ReportRenderer lays a report out in some document format.
type ReportRenderer interface {
	ContentType() string
	Extension() string
	Render(ctx context.Context, w io.Writer, report *WeeklyReport) error
}
