package cli

import (
	"fmt"
	"strings"

	"github.com/comitanigiacomo/momentum/internal/core/domain"
	"github.com/comitanigiacomo/momentum/internal/core/streaks"
)

type StatsCmd struct {
	Habit string `arg:"" optional:"" help:"Habit id or name. Omit for the summary of all habits."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if c.Habit != "" {
		habit, err := ctx.resolveHabit(c.Habit)
		if err != nil {
			return err
		}

		stats, err := ctx.App.Stats.HabitStats(ctx.Ctx, habit.ID)
		if err != nil {
			return err
		}
		printHabitStats(ctx, stats)
		return nil
	}

	summary, err := ctx.App.Stats.Summary(ctx.Ctx)
	if err != nil {
		return err
	}

	ctx.println(titleStyle.Render("Statistics for " + summary.Date))
	ctx.printf("Habits:              %d\n", summary.TotalHabits)
	ctx.printf("Last 7 days:         %d%%\n", summary.AverageWeeklyRate)
	ctx.printf("Last 30 days:        %d%%\n", summary.AverageMonthlyRate)
	ctx.printf("Overall consistency: %d%%\n", summary.AverageOverallConsistency)

	for i := range summary.Habits {
		ctx.println()
		printHabitStats(ctx, &summary.Habits[i])
	}
	return nil
}

func printHabitStats(ctx *Context, s *domain.HabitStats) {
	ctx.println(habitStyle(s.Color).Render(s.HabitName))
	ctx.printf("  %s  best %d\n", streakStyle.Render(fmt.Sprintf("streak %d", s.CurrentStreak)), s.LongestStreak)
	ctx.printf("  7d %d%%  30d %d%%  365d %d%%  overall %d%%  total %d\n",
		s.WeeklyRate, s.MonthlyRate, s.YearlyRate, s.OverallConsistency, s.TotalCompletions)
}

type BadgesCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *BadgesCmd) Run(ctx *Context) error {
	habit, err := ctx.resolveHabit(c.Habit)
	if err != nil {
		return err
	}

	stats, err := ctx.App.Stats.HabitStats(ctx.Ctx, habit.ID)
	if err != nil {
		return err
	}

	ctx.println(titleStyle.Render("Badges for " + stats.HabitName))
	for _, m := range streaks.Milestones {
		earned := stats.LongestStreak >= m.Days
		ctx.printf("%s %-9s %s\n", mark(earned), m.Name, mutedStyle.Render(fmt.Sprintf("%d days", m.Days)))
	}

	b := stats.Badges
	if b.Next == nil {
		ctx.println(doneStyle.Render("Every badge earned."))
		return nil
	}

	const width = 20
	filled := b.Progress * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	ctx.printf("Next: %s  %s %d%%\n", b.Next.Name, streakStyle.Render(bar), b.Progress)
	return nil
}
